package badger

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ResearchStorage implements the ResearchStorage interface for Badger
type ResearchStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewResearchStorage creates a new ResearchStorage instance
func NewResearchStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ResearchStorage {
	return &ResearchStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ResearchStorage) FindLatest(ctx context.Context, politicianID, position string) (*models.ResearchResult, error) {
	if politicianID == "" {
		return nil, fmt.Errorf("politician ID is required")
	}

	regex, err := regexp.Compile("(?i)^" + regexp.QuoteMeta(position) + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}

	var results []models.ResearchResult
	query := badgerhold.Where("PoliticianID").Eq(politicianID).Index("PoliticianID").
		And("Position").RegExp(regex).
		SortBy("CreatedAt").Reverse().Limit(1)
	if err := s.db.Store().Find(&results, query); err != nil {
		return nil, fmt.Errorf("failed to find research result: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (s *ResearchStorage) Create(ctx context.Context, result *models.ResearchResult) (*models.ResearchResult, error) {
	if result.PoliticianID == "" {
		return nil, fmt.Errorf("politician ID is required")
	}

	if result.ID == "" {
		result.ID = common.NewResultID()
	}
	now := time.Now()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now

	if err := s.db.Store().Insert(result.ID, result); err != nil {
		return nil, fmt.Errorf("failed to save research result: %w", err)
	}

	s.logger.Debug().
		Str("id", result.ID).
		Str("politician_id", result.PoliticianID).
		Str("position", result.Position).
		Msg("Saved research result")
	return result, nil
}

func (s *ResearchStorage) GetByID(ctx context.Context, id string) (*models.ResearchResult, error) {
	var result models.ResearchResult
	if err := s.db.Store().Get(id, &result); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get research result: %w", err)
	}
	return &result, nil
}
