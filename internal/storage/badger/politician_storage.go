package badger

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// PoliticianStorage implements the PoliticianStorage interface for Badger
type PoliticianStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPoliticianStorage creates a new PoliticianStorage instance
func NewPoliticianStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PoliticianStorage {
	return &PoliticianStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PoliticianStorage) FindByName(ctx context.Context, name string) (*models.Politician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("politician name is required")
	}

	// Anchored case-insensitive match so "juan cruz" and "Juan Cruz" hit
	// the same row
	regex, err := regexp.Compile("(?i)^" + regexp.QuoteMeta(name) + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	var politicians []models.Politician
	if err := s.db.Store().Find(&politicians, badgerhold.Where("Name").RegExp(regex).Limit(1)); err != nil {
		return nil, fmt.Errorf("failed to find politician: %w", err)
	}
	if len(politicians) == 0 {
		return nil, nil
	}
	return &politicians[0], nil
}

func (s *PoliticianStorage) GetOrCreate(ctx context.Context, name string) (*models.Politician, bool, error) {
	existing, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	politician := &models.Politician{
		ID:        common.NewPoliticianID(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
	if err := s.db.Store().Insert(politician.ID, politician); err != nil {
		return nil, false, fmt.Errorf("failed to create politician: %w", err)
	}

	s.logger.Debug().Str("id", politician.ID).Str("name", politician.Name).Msg("Created politician")
	return politician, true, nil
}

func (s *PoliticianStorage) Update(ctx context.Context, politician *models.Politician) error {
	if politician.ID == "" {
		return fmt.Errorf("politician ID is required")
	}
	if err := s.db.Store().Upsert(politician.ID, politician); err != nil {
		return fmt.Errorf("failed to update politician: %w", err)
	}
	return nil
}
