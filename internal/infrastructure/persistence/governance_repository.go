package persistence

import (
	"context"
	"errors"

	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGovernanceRepository implements governance.Repository using GORM
type GormGovernanceRepository struct {
	db *gorm.DB
}

// NewGormGovernanceRepository creates a new GormGovernanceRepository
func NewGormGovernanceRepository(db *gorm.DB) *GormGovernanceRepository {
	return &GormGovernanceRepository{db: db}
}

// Save creates or updates a governance record
func (r *GormGovernanceRepository) Save(ctx context.Context, g *governance.Governance) error {
	model := models.GovernanceModelFromDomain(g)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a governance record by ID
func (r *GormGovernanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*governance.Governance, error) {
	var model models.GovernanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDealID finds the governance record attached to a deal
func (r *GormGovernanceRepository) FindByDealID(ctx context.Context, dealID uuid.UUID) (*governance.Governance, error) {
	var model models.GovernanceModel
	if err := r.db.WithContext(ctx).First(&model, "deal_id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByDealID reports whether a governance record exists for the deal
func (r *GormGovernanceRepository) ExistsByDealID(ctx context.Context, dealID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GovernanceModel{}).
		Where("deal_id = ?", dealID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindFlagged lists governance records carrying a loss-making flag, a
// director-approval requirement, or a fraud alert
func (r *GormGovernanceRepository) FindFlagged(ctx context.Context, filter shared.Filter) ([]governance.Governance, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.GovernanceModel{}).
		Where("loss_making_project_flag = ? OR director_approval_required = ? OR fraud_alert_type <> ''", true, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.GovernanceModel
	if err := applyListOptions(query, filter, GovernanceSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	records := make([]governance.Governance, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records, total, nil
}

// Ensure GormGovernanceRepository implements the interface
var _ governance.Repository = (*GormGovernanceRepository)(nil)
