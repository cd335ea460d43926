package handlers

import (
	"errors"
	"net/http"

	"social_webapp/internal/chat"
	"social_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Users    *service.UserService
	Bets     *service.BetService
	Casino   *service.CasinoService
	Quests   *service.QuestService
	Meetings *service.MeetingService
	Bingo    *service.BingoService
	Chat     *service.ChatService
}

func NewHandler(db *pgxpool.Pool, chatClient *chat.Client) *Handler {
	return &Handler{
		DB:       db,
		Users:    service.NewUserService(db),
		Bets:     service.NewBetService(db),
		Casino:   service.NewCasinoService(db),
		Quests:   service.NewQuestService(db),
		Meetings: service.NewMeetingService(db),
		Bingo:    service.NewBingoService(db),
		Chat:     service.NewChatService(db, chatClient),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// fail maps service errors onto HTTP statuses; unknown errors are 500s with
// a generic body.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, service.ErrBetNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrQuestNotFound),
		errors.Is(err, service.ErrMeetingNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrNoActiveQuest),
		errors.Is(err, service.ErrBingoNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrRewardsGranted),
		errors.Is(err, service.ErrBetClosed),
		errors.Is(err, service.ErrBetStillOpen),
		errors.Is(err, service.ErrBetAlreadyPaid),
		errors.Is(err, service.ErrAlreadyHasQuest),
		errors.Is(err, service.ErrAlreadyRedeemed),
		errors.Is(err, service.ErrQuestRunning),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrMessageAlreadyRead):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInsufficientCoins),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidSide),
		errors.Is(err, service.ErrInvalidCombo),
		errors.Is(err, service.ErrInvalidHighCard),
		errors.Is(err, service.ErrNoPreviousCard),
		errors.Is(err, service.ErrLevelTooLow),
		errors.Is(err, service.ErrTooFewAttendees),
		errors.Is(err, service.ErrFieldNotOnCard):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotAnAttendee),
		errors.Is(err, service.ErrNotYourMessage):
		status, msg = http.StatusForbidden, err.Error()
	}

	c.JSON(status, gin.H{"error": msg})
}
