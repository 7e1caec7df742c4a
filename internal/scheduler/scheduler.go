// Package scheduler triggers board refreshes: once at startup, then on a
// cron interval when one is configured.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher re-fetches the full board.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 6h"; empty disables ticks
	busy      error  // sentinel returned by refresher when a fetch is running
}

// New creates a Scheduler that fires every intervalHours hours. An interval
// of 0 only performs the startup refresh. busy is the refresher's
// "already running" sentinel; ticks that hit it are logged as skipped.
func New(refresher Refresher, intervalHours int, busy error) *Scheduler {
	s := &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		refresher: refresher,
		busy:      busy,
	}
	if intervalHours > 0 {
		s.spec = fmt.Sprintf("@every %dh", intervalHours)
	}
	return s
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the board is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, func() { s.runRefresh(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc: %w", err)
		}
		s.cron.Start()
		log.Printf("[scheduler] Cron started, spec: %s", s.spec)
	} else {
		log.Println("[scheduler] No refresh interval, board loads once")
	}

	// Run immediately on startup (non-blocking)
	go s.runRefresh(ctx)

	return nil
}

// Stop shuts down the scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	log.Println("[scheduler] Refresh cycle started")
	err := s.refresher.Refresh(ctx)
	switch {
	case err == nil:
		log.Println("[scheduler] Refresh cycle complete")
	case s.busy != nil && errors.Is(err, s.busy):
		log.Println("[scheduler] Previous refresh still running, tick skipped")
	default:
		log.Printf("[scheduler] Refresh error: %v", err)
	}
}
