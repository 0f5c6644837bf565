package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gkt/backend/internal/application/billing"
	"go.uber.org/zap"
)

// AgingRefreshScheduler periodically recomputes receivable aging buckets.
// Days overdue only change once a day, so the default interval is 24 hours.
type AgingRefreshScheduler struct {
	service   *billing.ReceivableService
	logger    *zap.Logger
	config    AgingRefreshSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// AgingRefreshSchedulerConfig holds configuration for the aging refresh scheduler
type AgingRefreshSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval is how often aging buckets are recomputed
	Interval time.Duration

	// BatchSize is the number of receivables loaded per page during a refresh
	BatchSize int

	// RefreshTimeout is the maximum time for a single refresh run
	RefreshTimeout time.Duration
}

// DefaultAgingRefreshSchedulerConfig returns default configuration
func DefaultAgingRefreshSchedulerConfig() AgingRefreshSchedulerConfig {
	return AgingRefreshSchedulerConfig{
		Enabled:        true,
		Interval:       24 * time.Hour,
		BatchSize:      100,
		RefreshTimeout: 15 * time.Minute,
	}
}

// NewAgingRefreshScheduler creates a new aging refresh scheduler
func NewAgingRefreshScheduler(
	service *billing.ReceivableService,
	logger *zap.Logger,
	config AgingRefreshSchedulerConfig,
) *AgingRefreshScheduler {
	if config.Interval <= 0 {
		config.Interval = 24 * time.Hour
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.RefreshTimeout <= 0 {
		config.RefreshTimeout = 15 * time.Minute
	}

	return &AgingRefreshScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start starts the aging refresh scheduler
func (s *AgingRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Aging refresh scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Aging refresh scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *AgingRefreshScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Aging refresh scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Aging refresh scheduler stop timed out")
		return ctx.Err()
	}
}

// run executes refresh runs on the configured interval.
// The first run happens immediately so a restarted instance does not wait
// a full day to catch up.
func (s *AgingRefreshScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.executeRefresh(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Aging refresh loop stopping")
			return
		case <-ticker.C:
			s.executeRefresh(ctx)
		}
	}
}

// executeRefresh runs a single aging refresh pass
func (s *AgingRefreshScheduler) executeRefresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	startTime := time.Now()
	refreshed, err := s.service.RefreshAllAging(refreshCtx, s.config.BatchSize)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Receivable aging refresh failed",
			zap.Duration("duration", duration),
			zap.Int("refreshed", refreshed),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Receivable aging refresh completed",
		zap.Duration("duration", duration),
		zap.Int("refreshed", refreshed),
	)
}

// TriggerImmediateRefresh triggers a refresh run outside the regular interval
func (s *AgingRefreshScheduler) TriggerImmediateRefresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate aging refresh")

	// Run in a goroutine to not block
	go func() {
		defer s.wg.Done()
		s.executeRefresh(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *AgingRefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
