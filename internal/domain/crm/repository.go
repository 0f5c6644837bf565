package crm

import (
	"context"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OpportunityRepository defines persistence operations for opportunities
type OpportunityRepository interface {
	Save(ctx context.Context, opp *Opportunity) error
	FindByID(ctx context.Context, id uuid.UUID) (*Opportunity, error)
	FindByAdhocCode(ctx context.Context, adhocCode string) (*Opportunity, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Opportunity, int64, error)
	// GenerateAdhocCode produces the next GKT<yy>CH<mm><seq3> code.
	// Sequence is derived from a count within the current month; duplicate
	// codes are possible under concurrent creation (documented hazard).
	GenerateAdhocCode(ctx context.Context) (string, error)
}

// DealRepository defines persistence operations for deals
type DealRepository interface {
	Save(ctx context.Context, deal *Deal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Deal, error)
	FindByDealNumber(ctx context.Context, dealNumber string) (*Deal, error)
	FindByOpportunityID(ctx context.Context, opportunityID uuid.UUID) (*Deal, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Deal, int64, error)
	// GenerateDealNumber produces the next DEAL-<year>-<4-digit sequence> code
	GenerateDealNumber(ctx context.Context) (string, error)
}
