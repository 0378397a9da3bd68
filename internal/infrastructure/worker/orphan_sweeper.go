package worker

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

const maxBackoff = 10 * time.Minute

// OrphanSweeper периодически отменяет заказы без позиций.
type OrphanSweeper struct {
	uc       usecase.ReconcileUC
	interval time.Duration
	logger   logger.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewOrphanSweeper(uc usecase.ReconcileUC, interval time.Duration, logger logger.Logger) *OrphanSweeper {
	return &OrphanSweeper{
		uc:       uc,
		interval: interval,
		logger:   logger,
	}
}

func (s *OrphanSweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop останавливает воркер и дожидается текущего прохода.
func (s *OrphanSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *OrphanSweeper) run(ctx context.Context) {
	failures := 0

	for {
		delay := jitter.Duration(s.interval, jitter.DefaultFactor)
		if failures > 0 {
			delay = jitter.ExponentialBackoff(s.interval, maxBackoff, failures, jitter.DefaultFactor)
		}

		if err := jitter.Sleep(ctx, delay); err != nil {
			return
		}

		cancelled, err := s.uc.SweepOrphans(ctx)
		if err != nil {
			failures++
			s.logger.Errorf(err, "Orphan sweep failed (attempt %d)", failures)
			continue
		}

		failures = 0
		if cancelled > 0 {
			s.logger.Infof("Orphan sweep cancelled %d orders", cancelled)
		}
	}
}
