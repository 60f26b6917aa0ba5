package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
)

// Purger deletes anonymous chats older than their TTL on a cron schedule
type Purger struct {
	chats    interfaces.ChatStorage
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   arbor.ILogger
}

// NewPurger creates a new purger. The schedule uses standard five-field
// cron syntax.
func NewPurger(chats interfaces.ChatStorage, ttl time.Duration, schedule string, logger arbor.ILogger) *Purger {
	return &Purger{
		chats:    chats,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start begins the purge schedule and runs one purge immediately
func (p *Purger) Start() error {
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(p.schedule, p.runOnce); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", p.schedule, err)
	}
	p.cron.Start()
	p.logger.Info().
		Str("schedule", p.schedule).
		Dur("ttl", p.ttl).
		Msg("Temporary chat purge scheduled")

	go p.runOnce()
	return nil
}

// Stop halts the purge schedule
func (p *Purger) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}

func (p *Purger) runOnce() {
	cutoff := time.Now().Add(-p.ttl)
	if _, err := p.chats.PurgeTemporaryChats(context.Background(), cutoff); err != nil {
		p.logger.Warn().Err(err).Msg("Temporary chat purge failed")
	}
}
