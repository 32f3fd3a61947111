package jobs

import (
	"context"
	"sync"
	"time"

	"auction-settlement/internal/settlement"
	"auction-settlement/utils"
)

// Settler is the part of the settlement service the sweeper drives
type Settler interface {
	CloseEndedAuctions(ctx context.Context) (settlement.SweepReport, error)
	SweepOverduePayments(ctx context.Context) (settlement.SweepReport, error)
}

// Sweeper periodically closes ended auctions and cascades overdue payments.
// It does the same work as the /cron endpoints, so both may run at once.
type Sweeper struct {
	settler  Settler
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSweeper creates a sweeper job
func NewSweeper(settler Settler, interval time.Duration) *Sweeper {
	return &Sweeper{
		settler:  settler,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called
func (s *Sweeper) Start() {
	defer close(s.done)
	utils.Info("sweeper started", map[string]any{"interval": s.interval.String()})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopChan:
			utils.Info("sweeper stopped", nil)
			return
		}
	}
}

// Stop ends the loop and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	<-s.done
}

// RunOnce runs both sweeps. Auctions are closed first so that their new
// obligations are not mistaken for overdue ones.
func (s *Sweeper) RunOnce(ctx context.Context) {
	if _, err := s.settler.CloseEndedAuctions(ctx); err != nil {
		utils.Error("sweeper: failed to process ended auctions", map[string]any{"error": err.Error()})
	}
	if _, err := s.settler.SweepOverduePayments(ctx); err != nil {
		utils.Error("sweeper: failed to process overdue payments", map[string]any{"error": err.Error()})
	}
}
