package governance

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DealRiskHandler maintains the governance record of a deal. Creation and
// commercial updates trigger a risk evaluation; approval decisions are
// appended to the approval history.
type DealRiskHandler struct {
	governanceRepo governance.Repository
	dealRepo       crm.DealRepository
	riskScorer     governance.RiskScorer
	logger         *zap.Logger
}

// NewDealRiskHandler creates a new handler for deal governance events
func NewDealRiskHandler(governanceRepo governance.Repository, dealRepo crm.DealRepository, logger *zap.Logger) *DealRiskHandler {
	return &DealRiskHandler{
		governanceRepo: governanceRepo,
		dealRepo:       dealRepo,
		logger:         logger,
	}
}

// SetRiskScorer wires in an external risk signal source
func (h *DealRiskHandler) SetRiskScorer(scorer governance.RiskScorer) {
	h.riskScorer = scorer
}

// EventTypes returns the event types this handler is interested in
func (h *DealRiskHandler) EventTypes() []string {
	return []string{
		crm.EventTypeDealCreated,
		crm.EventTypeDealUpdated,
		crm.EventTypeDealApproved,
		crm.EventTypeDealRejected,
	}
}

// Handle routes deal events to risk evaluation or decision recording
func (h *DealRiskHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *crm.DealCreatedEvent:
		return h.evaluate(ctx, e.DealID, e.TotalOrderValue, e.ContributionMargin, e.GrossMarginPercent, e.MarginThresholdStatus, event)
	case *crm.DealUpdatedEvent:
		return h.evaluate(ctx, e.DealID, e.TotalOrderValue, e.ContributionMargin, e.GrossMarginPercent, e.MarginThresholdStatus, event)
	case *crm.DealApprovedEvent:
		return h.recordDecision(ctx, e.DealID, string(crm.ApprovalStatusApproved), "", event)
	case *crm.DealRejectedEvent:
		return h.recordDecision(ctx, e.DealID, string(crm.ApprovalStatusRejected), e.Reason, event)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *DealRiskHandler) evaluate(
	ctx context.Context,
	dealID uuid.UUID,
	totalOrderValue, contributionMargin, grossMarginPercent decimal.Decimal,
	marginThresholdStatus string,
	event shared.DomainEvent,
) error {
	record, err := h.findOrCreate(ctx, dealID, event)
	if err != nil {
		return err
	}

	lossMaking := contributionMargin.IsNegative()
	belowThreshold := marginThresholdStatus == crm.MarginBelowThreshold.String()
	directorRequired := belowThreshold || lossMaking

	// Absent an external signal, or when it fails, keep a conservative
	// Medium classification rather than failing the save
	level := governance.RiskMedium
	if h.riskScorer != nil {
		scored, err := h.riskScorer.Score(ctx, governance.RiskInput{
			DealID:             dealID,
			TotalOrderValue:    totalOrderValue,
			GrossMarginPercent: grossMarginPercent,
			BelowThreshold:     belowThreshold,
			LossMaking:         lossMaking,
		})
		if err != nil {
			h.logger.Warn("risk scoring failed, defaulting to medium",
				zap.String("deal_id", dealID.String()),
				zap.Error(err),
			)
		} else {
			level = scored
		}
	}

	record.Evaluate(level, lossMaking, directorRequired)
	if err := h.governanceRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save governance record: %w", err)
	}

	if err := h.syncDealGate(ctx, dealID, directorRequired); err != nil {
		return err
	}

	h.logger.Info("deal risk evaluated",
		zap.String("deal_id", dealID.String()),
		zap.String("risk_level", record.RiskLevel.String()),
		zap.Bool("loss_making", record.LossMakingProjectFlag),
		zap.Bool("director_approval_required", record.DirectorApprovalRequired),
	)
	return nil
}

// syncDealGate mirrors the director-approval requirement onto the deal
// aggregate, where Approve enforces it as a role gate
func (h *DealRiskHandler) syncDealGate(ctx context.Context, dealID uuid.UUID, directorRequired bool) error {
	deal, err := h.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("failed to load deal for governance gate: %w", err)
	}
	if deal.DirectorApprovalRequired == directorRequired {
		return nil
	}
	if directorRequired {
		deal.RequireDirectorApproval()
	} else {
		deal.ClearDirectorApproval()
	}
	if err := h.dealRepo.Save(ctx, deal); err != nil {
		return fmt.Errorf("failed to save deal governance gate: %w", err)
	}
	return nil
}

func (h *DealRiskHandler) recordDecision(ctx context.Context, dealID uuid.UUID, decision, notes string, event shared.DomainEvent) error {
	record, err := h.findOrCreate(ctx, dealID, event)
	if err != nil {
		return err
	}

	actor := shared.Actor{ID: event.ActorID(), Role: event.ActorRole()}
	record.RecordDecision(decision, actor, notes)

	if err := h.governanceRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save governance record: %w", err)
	}

	h.logger.Info("approval decision recorded",
		zap.String("deal_id", dealID.String()),
		zap.String("decision", decision),
		zap.Int("history_length", len(record.ApprovalHistory)),
	)
	return nil
}

func (h *DealRiskHandler) findOrCreate(ctx context.Context, dealID uuid.UUID, event shared.DomainEvent) (*governance.Governance, error) {
	exists, err := h.governanceRepo.ExistsByDealID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to check governance record: %w", err)
	}
	if exists {
		record, err := h.governanceRepo.FindByDealID(ctx, dealID)
		if err != nil {
			return nil, fmt.Errorf("failed to load governance record: %w", err)
		}
		return record, nil
	}
	actor := shared.Actor{ID: event.ActorID(), Role: event.ActorRole()}
	return governance.NewGovernance(dealID, actor), nil
}

// Ensure DealRiskHandler implements shared.EventHandler
var _ shared.EventHandler = (*DealRiskHandler)(nil)
