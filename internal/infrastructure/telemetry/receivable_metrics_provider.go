// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceivableMetricsProvider implements ReceivableMetricsProvider using GORM.
// It queries the receivables table directly for aggregated metrics.
type GormReceivableMetricsProvider struct {
	db *gorm.DB
}

// NewGormReceivableMetricsProvider creates a new GormReceivableMetricsProvider.
func NewGormReceivableMetricsProvider(db *gorm.DB) *GormReceivableMetricsProvider {
	return &GormReceivableMetricsProvider{db: db}
}

// GetOutstandingByAgingBucket returns total outstanding amount per aging bucket.
func (p *GormReceivableMetricsProvider) GetOutstandingByAgingBucket(ctx context.Context) (map[string]decimal.Decimal, error) {
	type result struct {
		AgingBucket string          `gorm:"column:aging_bucket"`
		Outstanding decimal.Decimal `gorm:"column:outstanding"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("receivables").
		Select("aging_bucket, COALESCE(SUM(outstanding_amount), 0) as outstanding").
		Where("status <> ?", "Paid").
		Group("aging_bucket").
		Having("SUM(outstanding_amount) > 0").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[string]decimal.Decimal, len(results))
	for _, r := range results {
		m[r.AgingBucket] = r.Outstanding
	}

	return m, nil
}

// GetOverdueCount returns the number of receivables past their due date.
func (p *GormReceivableMetricsProvider) GetOverdueCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("receivables").
		Where("status = ?", "Overdue").
		Count(&count).Error

	return count, err
}
