package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/scrutor/internal/models"
)

// PoliticianStorage defines persistence operations for politicians
type PoliticianStorage interface {
	// FindByName looks up a politician by case-insensitive name match.
	// Returns nil (no error) when no politician exists for the name.
	FindByName(ctx context.Context, name string) (*models.Politician, error)

	// GetOrCreate returns the politician with the given name, creating it
	// when absent. The created flag reports whether a new row was written.
	GetOrCreate(ctx context.Context, name string) (*models.Politician, bool, error)

	// Update persists changes to an existing politician
	Update(ctx context.Context, politician *models.Politician) error
}

// ResearchStorage defines persistence operations for research results
type ResearchStorage interface {
	// FindLatest returns the most recent result for a politician and
	// case-insensitive position, or nil when none exists.
	FindLatest(ctx context.Context, politicianID, position string) (*models.ResearchResult, error)

	// Create persists a new research result and returns it with its ID and
	// timestamps populated.
	Create(ctx context.Context, result *models.ResearchResult) (*models.ResearchResult, error)

	// GetByID returns a result by ID, or nil when not found
	GetByID(ctx context.Context, id string) (*models.ResearchResult, error)
}

// ChatStorage defines persistence operations for chats and Q&A entries
type ChatStorage interface {
	// CreateChat persists a new chat
	CreateChat(ctx context.Context, chat *models.Chat) error

	// GetChat returns a chat by ID, or nil when not found
	GetChat(ctx context.Context, id string) (*models.Chat, error)

	// ListChatsByUser returns all chats for a user, newest first
	ListChatsByUser(ctx context.Context, userID string) ([]*models.Chat, error)

	// DeleteChat removes a chat and its Q&A entries
	DeleteChat(ctx context.Context, id string) error

	// SaveQandA persists a question/answer pair
	SaveQandA(ctx context.Context, qa *models.QandA) error

	// ListQandA returns the Q&A entries for a chat, newest first
	ListQandA(ctx context.Context, chatID string) ([]*models.QandA, error)

	// PurgeTemporaryChats deletes anonymous chats created before the cutoff
	// and returns how many were removed.
	PurgeTemporaryChats(ctx context.Context, cutoff time.Time) (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	PoliticianStorage() PoliticianStorage
	ResearchStorage() ResearchStorage
	ChatStorage() ChatStorage
	Close() error
}
