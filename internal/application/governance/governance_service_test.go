package governance

import (
	"context"
	"testing"

	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func directorActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Name: "Dana Director", Role: shared.RoleDirector}
}

func TestGovernanceService_GetByDeal(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGovernanceRepository)
	svc := NewGovernanceService(mockRepo, zap.NewNop())

	dealID := uuid.New()
	record := governance.NewGovernance(dealID, directorActor())
	mockRepo.On("FindByDealID", ctx, dealID).Return(record, nil)

	got, err := svc.GetByDeal(ctx, dealID)

	require.NoError(t, err)
	assert.Equal(t, dealID, got.DealID)
	mockRepo.AssertExpectations(t)
}

func TestGovernanceService_GetByDeal_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGovernanceRepository)
	svc := NewGovernanceService(mockRepo, zap.NewNop())

	dealID := uuid.New()
	mockRepo.On("FindByDealID", ctx, dealID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByDeal(ctx, dealID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGovernanceService_ListFlagged(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGovernanceRepository)
	svc := NewGovernanceService(mockRepo, zap.NewNop())

	filter := shared.NewFilter()
	record := governance.NewGovernance(uuid.New(), directorActor())
	mockRepo.On("FindFlagged", ctx, filter).Return([]governance.Governance{*record}, int64(1), nil)

	records, total, err := svc.ListFlagged(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int64(1), total)
}
