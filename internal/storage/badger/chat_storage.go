package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ChatStorage implements the ChatStorage interface for Badger
type ChatStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChatStorage creates a new ChatStorage instance
func NewChatStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChatStorage {
	return &ChatStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ChatStorage) CreateChat(ctx context.Context, chat *models.Chat) error {
	if chat.ID == "" {
		return fmt.Errorf("chat ID is required")
	}

	now := time.Now()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	chat.UpdatedAt = now

	if err := s.db.Store().Insert(chat.ID, chat); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

func (s *ChatStorage) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	if err := s.db.Store().Get(id, &chat); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

func (s *ChatStorage) ListChatsByUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	var chats []models.Chat
	query := badgerhold.Where("UserID").Eq(userID).SortBy("CreatedAt").Reverse()
	if err := s.db.Store().Find(&chats, query); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	result := make([]*models.Chat, len(chats))
	for i := range chats {
		result[i] = &chats[i]
	}
	return result, nil
}

func (s *ChatStorage) DeleteChat(ctx context.Context, id string) error {
	if err := s.db.Store().DeleteMatching(&models.QandA{}, badgerhold.Where("ChatID").Eq(id).Index("ChatID")); err != nil {
		return fmt.Errorf("failed to delete chat Q&A entries: %w", err)
	}
	if err := s.db.Store().Delete(id, &models.Chat{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}

func (s *ChatStorage) SaveQandA(ctx context.Context, qa *models.QandA) error {
	if qa.ID == "" {
		return fmt.Errorf("qanda ID is required")
	}
	if qa.ChatID == "" {
		return fmt.Errorf("chat ID is required")
	}
	if qa.CreatedAt.IsZero() {
		qa.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(qa.ID, qa); err != nil {
		return fmt.Errorf("failed to save qanda: %w", err)
	}
	return nil
}

func (s *ChatStorage) ListQandA(ctx context.Context, chatID string) ([]*models.QandA, error) {
	var entries []models.QandA
	query := badgerhold.Where("ChatID").Eq(chatID).Index("ChatID").SortBy("CreatedAt").Reverse()
	if err := s.db.Store().Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list qanda: %w", err)
	}

	result := make([]*models.QandA, len(entries))
	for i := range entries {
		result[i] = &entries[i]
	}
	return result, nil
}

func (s *ChatStorage) PurgeTemporaryChats(ctx context.Context, cutoff time.Time) (int, error) {
	var chats []models.Chat
	query := badgerhold.Where("UserID").Eq("").And("CreatedAt").Lt(cutoff)
	if err := s.db.Store().Find(&chats, query); err != nil {
		return 0, fmt.Errorf("failed to find expired chats: %w", err)
	}

	purged := 0
	for i := range chats {
		if err := s.DeleteChat(ctx, chats[i].ID); err != nil {
			s.logger.Warn().Err(err).Str("chat_id", chats[i].ID).Msg("Failed to purge expired chat")
			continue
		}
		purged++
	}

	if purged > 0 {
		s.logger.Info().Int("count", purged).Msg("Purged expired temporary chats")
	}
	return purged, nil
}
