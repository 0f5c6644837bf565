package delivery

import (
	"context"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProgramRepository defines persistence operations for programs
type ProgramRepository interface {
	Save(ctx context.Context, program *Program) error
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)
	FindByDealID(ctx context.Context, dealID uuid.UUID) ([]Program, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Program, int64, error)
}
