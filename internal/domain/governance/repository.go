package governance

import (
	"context"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for governance records
type Repository interface {
	Save(ctx context.Context, g *Governance) error
	FindByID(ctx context.Context, id uuid.UUID) (*Governance, error)
	FindByDealID(ctx context.Context, dealID uuid.UUID) (*Governance, error)
	ExistsByDealID(ctx context.Context, dealID uuid.UUID) (bool, error)
	FindFlagged(ctx context.Context, filter shared.Filter) ([]Governance, int64, error)
}
