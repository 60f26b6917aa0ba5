package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db         *BadgerDB
	politician interfaces.PoliticianStorage
	research   interfaces.ResearchStorage
	chat       interfaces.ChatStorage
	logger     arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		politician: NewPoliticianStorage(db, logger),
		research:   NewResearchStorage(db, logger),
		chat:       NewChatStorage(db, logger),
		logger:     logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// PoliticianStorage returns the Politician storage interface
func (m *Manager) PoliticianStorage() interfaces.PoliticianStorage {
	return m.politician
}

// ResearchStorage returns the Research storage interface
func (m *Manager) ResearchStorage() interfaces.ResearchStorage {
	return m.research
}

// ChatStorage returns the Chat storage interface
func (m *Manager) ChatStorage() interfaces.ChatStorage {
	return m.chat
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
