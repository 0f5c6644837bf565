package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDealRepository implements crm.DealRepository using GORM
type GormDealRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormDealRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates a deal. When an outbox saver is wired in, the
// pending domain events are persisted in the same transaction so the
// approval cascade survives a crash between save and publish.
func (r *GormDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	model := models.DealModelFromDomain(deal)
	events := deal.GetDomainEvents()
	if r.outboxSaver == nil || len(events) == 0 {
		return r.db.WithContext(ctx).Save(model).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
			return fmt.Errorf("failed to save events to outbox: %w", err)
		}
		return nil
	})
}

// FindByID finds a deal by ID
func (r *GormDealRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Deal, error) {
	var model models.DealModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDealNumber finds a deal by its deal number
func (r *GormDealRepository) FindByDealNumber(ctx context.Context, dealNumber string) (*crm.Deal, error) {
	var model models.DealModel
	if err := r.db.WithContext(ctx).First(&model, "deal_number = ?", dealNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOpportunityID finds the deal converted from an opportunity
func (r *GormDealRepository) FindByOpportunityID(ctx context.Context, opportunityID uuid.UUID) (*crm.Deal, error) {
	var model models.DealModel
	if err := r.db.WithContext(ctx).First(&model, "opportunity_id = ?", opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists deals with pagination and optional filters
func (r *GormDealRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Deal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DealModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("deal_number ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["approval_status"]; ok {
		query = query.Where("approval_status = ?", status)
	}
	if threshold, ok := filter.Filters["margin_threshold_status"]; ok {
		query = query.Where("margin_threshold_status = ?", threshold)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DealModel
	if err := applyListOptions(query, filter, DealSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	deals := make([]crm.Deal, 0, len(rows))
	for i := range rows {
		deals = append(deals, *rows[i].ToDomain())
	}
	return deals, total, nil
}

// GenerateDealNumber produces the next DEAL-<year>-<4-digit sequence> code.
// The sequence counts deals created in the current calendar year.
func (r *GormDealRepository) GenerateDealNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("DEAL-%d-", year)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DealModel{}).
		Where("deal_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// Ensure GormDealRepository implements the interface
var _ crm.DealRepository = (*GormDealRepository)(nil)
