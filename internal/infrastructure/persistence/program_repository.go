package persistence

import (
	"context"
	"errors"

	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProgramRepository implements delivery.ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// Save creates or updates a program
func (r *GormProgramRepository) Save(ctx context.Context, program *delivery.Program) error {
	model := models.ProgramModelFromDomain(program)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a program by ID
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Program, error) {
	var model models.ProgramModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDealID lists the programs delivering a deal
func (r *GormProgramRepository) FindByDealID(ctx context.Context, dealID uuid.UUID) ([]delivery.Program, error) {
	var rows []models.ProgramModel
	if err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	programs := make([]delivery.Program, 0, len(rows))
	for i := range rows {
		programs = append(programs, *rows[i].ToDomain())
	}
	return programs, nil
}

// FindAll lists programs with pagination and optional filters
func (r *GormProgramRepository) FindAll(ctx context.Context, filter shared.Filter) ([]delivery.Program, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProgramModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if eligible, ok := filter.Filters["invoice_eligible"]; ok {
		query = query.Where("invoice_eligible = ?", eligible)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProgramModel
	if err := applyListOptions(query, filter, ProgramSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	programs := make([]delivery.Program, 0, len(rows))
	for i := range rows {
		programs = append(programs, *rows[i].ToDomain())
	}
	return programs, total, nil
}

// Ensure GormProgramRepository implements the interface
var _ delivery.ProgramRepository = (*GormProgramRepository)(nil)
