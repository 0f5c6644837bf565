// Package governance exposes read access to the risk-and-approval records
// the deal cascade maintains.
package governance

import (
	"context"

	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GovernanceService provides application-level governance queries.
// Mutations happen exclusively through the deal event handlers; the
// service only reads.
type GovernanceService struct {
	governanceRepo governance.Repository
	logger         *zap.Logger
}

// NewGovernanceService creates a new GovernanceService
func NewGovernanceService(governanceRepo governance.Repository, logger *zap.Logger) *GovernanceService {
	return &GovernanceService{
		governanceRepo: governanceRepo,
		logger:         logger,
	}
}

// Get retrieves a governance record by its ID
func (s *GovernanceService) Get(ctx context.Context, id uuid.UUID) (*governance.Governance, error) {
	return s.governanceRepo.FindByID(ctx, id)
}

// GetByDeal retrieves the governance record attached to a deal
func (s *GovernanceService) GetByDeal(ctx context.Context, dealID uuid.UUID) (*governance.Governance, error) {
	return s.governanceRepo.FindByDealID(ctx, dealID)
}

// ListFlagged lists governance records carrying an active fraud alert
// or requiring director approval
func (s *GovernanceService) ListFlagged(ctx context.Context, filter shared.Filter) ([]governance.Governance, int64, error) {
	return s.governanceRepo.FindFlagged(ctx, filter)
}
