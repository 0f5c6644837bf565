// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the commercial lifecycle.
// It tracks deal flow, cascade activity, invoicing, and receivable health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	dealCreatedTotal      *Counter
	dealValueTotal        *Counter
	cascadeExecutedTotal  *Counter
	cascadeSkippedTotal   *Counter
	invoiceGeneratedTotal *Counter
	fraudAlertTotal       *Counter

	// Gauge metrics (point-in-time values)
	receivableOutstanding *Gauge
	receivableOverdue     *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	receivableProvider ReceivableMetricsProvider
}

// ReceivableMetricsProvider provides receivable data for periodic metrics
// collection. This interface allows the telemetry layer to query receivable
// state without depending on the billing domain directly.
type ReceivableMetricsProvider interface {
	// GetOutstandingByAgingBucket returns total outstanding amount per aging bucket
	GetOutstandingByAgingBucket(ctx context.Context) (map[string]decimal.Decimal, error)

	// GetOverdueCount returns the number of receivables currently overdue
	GetOverdueCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter              metric.Meter
	Logger             *zap.Logger
	CollectInterval    time.Duration // Default: 5 minutes
	ReceivableProvider ReceivableMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:              cfg.Meter,
		logger:             logger,
		stopChan:           make(chan struct{}),
		receivableProvider: cfg.ReceivableProvider,
	}

	// Initialize counter metrics
	var err error

	// Deal metrics
	bm.dealCreatedTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_deal_created_total",
		"Total number of deals created",
		"{deals}",
	)
	if err != nil {
		return nil, err
	}

	bm.dealValueTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_deal_value_total",
		"Total order value of created deals in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	// Cascade metrics
	bm.cascadeExecutedTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_cascade_executed_total",
		"Total number of cascade steps executed",
		"{steps}",
	)
	if err != nil {
		return nil, err
	}

	bm.cascadeSkippedTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_cascade_skipped_total",
		"Total number of cascade steps skipped by idempotency guards",
		"{steps}",
	)
	if err != nil {
		return nil, err
	}

	// Billing metrics
	bm.invoiceGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_invoice_generated_total",
		"Total number of invoices generated",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	// Governance metrics
	bm.fraudAlertTotal, err = NewCounter(
		cfg.Meter,
		"lifecycle_fraud_alert_total",
		"Total number of fraud alerts raised",
		"{alerts}",
	)
	if err != nil {
		return nil, err
	}

	// Receivable gauge metrics
	bm.receivableOutstanding, err = NewGauge(
		cfg.Meter,
		"lifecycle_receivable_outstanding_paise",
		"Current outstanding receivable amount in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	bm.receivableOverdue, err = NewGauge(
		cfg.Meter,
		"lifecycle_receivable_overdue_count",
		"Number of receivables past their due date",
		"{receivables}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Deal Metrics
// =============================================================================

// RecordDealCreated records a deal creation event.
// This should be called from the application layer when a deal is created.
func (bm *BusinessMetrics) RecordDealCreated(ctx context.Context) {
	bm.dealCreatedTotal.Inc(ctx)
}

// RecordDealValue records the total order value of a created deal.
// Amount should be in the smallest currency unit (paise).
func (bm *BusinessMetrics) RecordDealValue(ctx context.Context, amountPaise int64) {
	bm.dealValueTotal.Add(ctx, amountPaise)
}

// RecordDealWithValue is a convenience method that records both deal count and value.
func (bm *BusinessMetrics) RecordDealWithValue(ctx context.Context, totalOrderValue decimal.Decimal) {
	bm.RecordDealCreated(ctx)

	// Convert to paise (multiply by 100)
	amountPaise := totalOrderValue.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordDealValue(ctx, amountPaise)
}

// =============================================================================
// Cascade Metrics
// =============================================================================

// RecordCascadeExecuted records an executed cascade step for a trigger event.
func (bm *BusinessMetrics) RecordCascadeExecuted(ctx context.Context, eventType, step string) {
	bm.cascadeExecutedTotal.Inc(ctx,
		AttrEventType.String(eventType),
		AttrCascadeStep.String(step),
	)
}

// RecordCascadeSkipped records a cascade step skipped by an idempotency guard.
func (bm *BusinessMetrics) RecordCascadeSkipped(ctx context.Context, eventType, step string) {
	bm.cascadeSkippedTotal.Inc(ctx,
		AttrEventType.String(eventType),
		AttrCascadeStep.String(step),
	)
}

// =============================================================================
// Billing Metrics
// =============================================================================

// RecordInvoiceGenerated records an invoice generation event.
func (bm *BusinessMetrics) RecordInvoiceGenerated(ctx context.Context, sourceType string) {
	bm.invoiceGeneratedTotal.Inc(ctx,
		AttrEntityType.String(sourceType),
	)
}

// =============================================================================
// Governance Metrics
// =============================================================================

// RecordFraudAlert records a raised fraud alert.
func (bm *BusinessMetrics) RecordFraudAlert(ctx context.Context, alertType string) {
	bm.fraudAlertTotal.Inc(ctx,
		AttrAlertType.String(alertType),
	)
}

// =============================================================================
// Receivable Metrics
// =============================================================================

// RecordOutstandingAmount records the current outstanding amount for an aging bucket.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOutstandingAmount(ctx context.Context, agingBucket string, amountPaise int64) {
	bm.receivableOutstanding.Record(ctx, amountPaise,
		AttrAgingBucket.String(agingBucket),
	)
}

// RecordOverdueCount records the number of receivables past their due date.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOverdueCount(ctx context.Context, count int64) {
	bm.receivableOverdue.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects receivable metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectReceivableMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectReceivableMetrics(ctx)
		}
	}
}

// collectReceivableMetrics collects receivable gauge metrics.
func (bm *BusinessMetrics) collectReceivableMetrics(ctx context.Context) {
	if bm.receivableProvider == nil {
		bm.logger.Debug("No receivable provider configured, skipping receivable metrics collection")
		return
	}

	// Collect outstanding amount by aging bucket
	outstandingByBucket, err := bm.receivableProvider.GetOutstandingByAgingBucket(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get outstanding receivables", zap.Error(err))
	} else {
		for bucket, amount := range outstandingByBucket {
			amountPaise := amount.Mul(decimal.NewFromInt(100)).IntPart()
			bm.RecordOutstandingAmount(ctx, bucket, amountPaise)
		}
	}

	// Collect overdue count
	overdueCount, err := bm.receivableProvider.GetOverdueCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get overdue receivable count", zap.Error(err))
	} else {
		bm.RecordOverdueCount(ctx, overdueCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	// Additional business attributes can be added here
	AttrCascadeTrigger = attribute.Key("cascade_trigger")
)
