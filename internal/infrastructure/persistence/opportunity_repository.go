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

// GormOpportunityRepository implements crm.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// Save creates or updates an opportunity
func (r *GormOpportunityRepository) Save(ctx context.Context, opp *crm.Opportunity) error {
	model := models.OpportunityModelFromDomain(opp)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an opportunity by ID
func (r *GormOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Opportunity, error) {
	var model models.OpportunityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAdhocCode finds an opportunity by its adhoc code
func (r *GormOpportunityRepository) FindByAdhocCode(ctx context.Context, adhocCode string) (*crm.Opportunity, error) {
	var model models.OpportunityModel
	if err := r.db.WithContext(ctx).First(&model, "adhoc_code = ?", adhocCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists opportunities with pagination and optional search on name or client
func (r *GormOpportunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Opportunity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OpportunityModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OpportunityModel
	if err := applyListOptions(query, filter, OpportunitySortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	opps := make([]crm.Opportunity, 0, len(rows))
	for i := range rows {
		opps = append(opps, *rows[i].ToDomain())
	}
	return opps, total, nil
}

// GenerateAdhocCode produces the next GKT<yy>CH<mm><seq3> code.
// The sequence counts codes issued in the current month, so concurrent
// creations can collide; the unique index on adhoc_code surfaces the loser.
func (r *GormOpportunityRepository) GenerateAdhocCode(ctx context.Context) (string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("GKT%02dCH%02d", now.Year()%100, int(now.Month()))

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OpportunityModel{}).
		Where("adhoc_code LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

// Ensure GormOpportunityRepository implements the interface
var _ crm.OpportunityRepository = (*GormOpportunityRepository)(nil)
