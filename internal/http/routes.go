package http

import (
	"os"
	"strconv"
	"time"

	"social_webapp/internal/chat"
	"social_webapp/internal/http/handlers"
	"social_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, chatClient *chat.Client, version string) {
	h := handlers.NewHandler(db, chatClient)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := envInt("API_RATE_LIMIT", 60)
	apiRateWindow := envSeconds("API_RATE_WINDOW_SECONDS", time.Minute)
	authRateLimit := envInt("AUTH_RATE_LIMIT", 5)
	authRateWindow := envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute)
	gameRateLimit := envInt("GAME_RATE_LIMIT", 60)
	gameRateWindow := envSeconds("GAME_RATE_WINDOW_SECONDS", time.Minute)

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth: Redis limiter plus the in-process one, login is the abuse magnet
	api.POST("/auth/login",
		middleware.RedisRateLimit(authRateLimit, authRateWindow),
		middleware.SimpleRateLimit(authRateLimit, authRateWindow),
		h.Login)

	// Users and messages
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/users/:id", h.Profile)
	api.POST("/me/daily-coins", middleware.JWT(), h.ClaimDailyCoins)
	api.GET("/messages", middleware.JWT(), h.UnreadMessages)
	api.POST("/messages", middleware.JWT(), h.SendMessage)
	api.POST("/messages/:id/read", middleware.JWT(), h.ReadMessage)

	// Bet markets
	api.GET("/bets", middleware.JWT(), h.ListBets)
	api.POST("/bets", middleware.JWT(), h.CreateBet)
	api.POST("/bets/:id/vote", middleware.JWT(), h.Vote)
	api.POST("/bets/:id/settle", middleware.JWT(), h.Settle)

	// Casino (per user rate limit, not per IP)
	gameRL := middleware.GameRateLimit(gameRateLimit, gameRateWindow)
	api.POST("/casino/roulette", middleware.JWT(), gameRL, h.Roulette)
	api.POST("/casino/highcard", middleware.JWT(), gameRL, h.HighCard)

	// Daily quests
	api.GET("/quests", h.ListQuests)
	api.POST("/quests/:id/start", middleware.JWT(), h.StartQuest)
	api.GET("/daily-quest", middleware.JWT(), h.QuestStatus)
	api.POST("/daily-quest/redeem", middleware.JWT(), h.RedeemQuest)

	// Meetings
	api.GET("/meetings", h.ListMeetings)
	api.POST("/meetings", middleware.JWT(), h.CreateMeeting)
	api.GET("/meetings/:id", h.GetMeeting)
	api.POST("/meetings/:id/confirm", middleware.JWT(), h.ConfirmMeeting)
	api.POST("/meetings/:id/decline", middleware.JWT(), h.DeclineMeeting)
	api.GET("/places", h.ListPlaces)

	// Shared daily bingo
	api.GET("/bingo/today", h.BingoToday)
	api.POST("/bingo/mark", middleware.JWT(), h.BingoMark)
	api.POST("/bingo/clear", middleware.JWT(), h.BingoClear)

	// Assistant
	api.POST("/chat/talk", middleware.JWT(), h.Talk)
	api.GET("/chat/history", middleware.JWT(), h.ChatHistory)
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envSeconds(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
