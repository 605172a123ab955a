// Package worker runs the background jobs of the service.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/infras/otel"
	"bookit/internal/domains/bookingrequest/model/dto"
	"bookit/shared/constant"
)

// Expirer is the part of the booking request service the sweeper drives.
type Expirer interface {
	Sweep(ctx context.Context) (dto.SweepResponse, error)
}

// Sweeper expires unpaid booking requests on a fixed interval.
type Sweeper struct {
	service  Expirer
	otel     otel.Otel
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSweeper(service Expirer, cfg *config.Config, otel otel.Otel) *Sweeper {
	interval := time.Duration(cfg.Booking.Sweep.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	return &Sweeper{
		service:  service,
		otel:     otel,
		interval: interval,
	}
}

// Start blocks until ctx is done or Stop is called. A second Start while
// running returns immediately.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()

		return
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	defer close(doneCh)

	log.Info().Dur("interval", s.interval).Msg("Booking request sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped()
			log.Info().Msg("Booking request sweeper stopped by context")

			return
		case <-stopCh:
			log.Info().Msg("Booking request sweeper stopped")

			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()

		return
	}

	s.running = false
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
}

func (s *Sweeper) RunOnce(ctx context.Context) int {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".sweeper.RunOnce")
	defer scope.End()

	res, err := s.service.Sweep(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("booking request sweep failed")

		return 0
	}

	return res.Expired
}

func (s *Sweeper) markStopped() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
