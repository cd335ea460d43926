package service

import (
	"context"
	"errors"

	"social_webapp/internal/chat"
	"social_webapp/internal/domain"
	"social_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxChatContext caps how many turns are kept and resent per conversation.
const maxChatContext = 20

const systemPrompt = "You are the friendly assistant of a small social club app. " +
	"Members bet coins on predictions, play roulette and high card in the casino, " +
	"do daily quests and log their meetings. Answer briefly and keep it fun."

// ChatService runs per-user assistant conversations with a persisted
// rolling context.
type ChatService struct {
	db       *pgxpool.Pool
	chatRepo *repository.ChatRepository
	client   *chat.Client
}

func NewChatService(db *pgxpool.Pool, client *chat.Client) *ChatService {
	return &ChatService{
		db:       db,
		chatRepo: repository.NewChatRepository(db),
		client:   client,
	}
}

// Talk appends the user's message to their conversation, asks the model and
// stores the reply. The first message starts a new conversation.
func (s *ChatService) Talk(ctx context.Context, userID int64, text string) (*domain.ChatMessage, error) {
	c, err := s.chatRepo.GetLatest(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		c = &domain.Chat{
			UserID:  userID,
			Context: []domain.ChatMessage{{Role: "system", Content: systemPrompt}},
		}
		if err := s.chatRepo.Create(ctx, c); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	c.Context = append(c.Context, domain.ChatMessage{Role: "user", Content: text})

	reply, err := s.client.Complete(ctx, c.Context)
	if err != nil {
		return nil, err
	}
	c.Context = append(c.Context, *reply)

	// keep the system prompt, trim the oldest turns beyond the cap
	if len(c.Context) > maxChatContext {
		trimmed := make([]domain.ChatMessage, 0, maxChatContext)
		trimmed = append(trimmed, c.Context[0])
		trimmed = append(trimmed, c.Context[len(c.Context)-(maxChatContext-1):]...)
		c.Context = trimmed
	}

	if err := s.chatRepo.SaveContext(ctx, c); err != nil {
		return nil, err
	}
	return reply, nil
}

// History returns the user's conversation without the system prompt.
func (s *ChatService) History(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	c, err := s.chatRepo.GetLatest(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	history := make([]domain.ChatMessage, 0, len(c.Context))
	for _, m := range c.Context {
		if m.Role == "system" {
			continue
		}
		history = append(history, m)
	}
	return history, nil
}
