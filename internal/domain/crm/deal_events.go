package crm

import (
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDeal = "Deal"

// Event type constants
const (
	EventTypeDealCreated  = "DealCreated"
	EventTypeDealUpdated  = "DealUpdated"
	EventTypeDealApproved = "DealApproved"
	EventTypeDealRejected = "DealRejected"
)

// DealCreatedEvent is raised when a new deal is created.
// The governance gate consumes it to run the initial risk evaluation.
type DealCreatedEvent struct {
	shared.BaseDomainEvent
	DealID                uuid.UUID       `json:"deal_id"`
	DealNumber            string          `json:"deal_number"`
	ClientName            string          `json:"client_name"`
	TotalOrderValue       decimal.Decimal `json:"total_order_value"`
	ContributionMargin    decimal.Decimal `json:"contribution_margin"`
	GrossMarginPercent    decimal.Decimal `json:"gross_margin_percent"`
	MarginThresholdStatus string          `json:"margin_threshold_status"`
}

// NewDealCreatedEvent creates a new DealCreatedEvent
func NewDealCreatedEvent(deal *Deal, actor shared.Actor) *DealCreatedEvent {
	return &DealCreatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeDealCreated, AggregateTypeDeal, deal.ID, actor),
		DealID:                deal.ID,
		DealNumber:            deal.DealNumber,
		ClientName:            deal.ClientName,
		TotalOrderValue:       deal.TotalOrderValue,
		ContributionMargin:    deal.ContributionMargin,
		GrossMarginPercent:    deal.GrossMarginPercent,
		MarginThresholdStatus: deal.MarginThresholdStatus.String(),
	}
}

// EventType returns the event type name
func (e *DealCreatedEvent) EventType() string {
	return EventTypeDealCreated
}

// DealUpdatedEvent is raised when the commercial inputs of a deal change.
// The governance gate re-evaluates risk on every update.
type DealUpdatedEvent struct {
	shared.BaseDomainEvent
	DealID                uuid.UUID       `json:"deal_id"`
	DealNumber            string          `json:"deal_number"`
	ClientName            string          `json:"client_name"`
	TotalOrderValue       decimal.Decimal `json:"total_order_value"`
	ContributionMargin    decimal.Decimal `json:"contribution_margin"`
	GrossMarginPercent    decimal.Decimal `json:"gross_margin_percent"`
	MarginThresholdStatus string          `json:"margin_threshold_status"`
}

// NewDealUpdatedEvent creates a new DealUpdatedEvent
func NewDealUpdatedEvent(deal *Deal, actor shared.Actor) *DealUpdatedEvent {
	return &DealUpdatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeDealUpdated, AggregateTypeDeal, deal.ID, actor),
		DealID:                deal.ID,
		DealNumber:            deal.DealNumber,
		ClientName:            deal.ClientName,
		TotalOrderValue:       deal.TotalOrderValue,
		ContributionMargin:    deal.ContributionMargin,
		GrossMarginPercent:    deal.GrossMarginPercent,
		MarginThresholdStatus: deal.MarginThresholdStatus.String(),
	}
}

// EventType returns the event type name
func (e *DealUpdatedEvent) EventType() string {
	return EventTypeDealUpdated
}

// DealApprovedEvent is raised when a deal is approved.
// The cascade orchestrator consumes it to create the purchase order stub;
// the governance gate re-evaluates risk.
type DealApprovedEvent struct {
	shared.BaseDomainEvent
	DealID                uuid.UUID       `json:"deal_id"`
	DealNumber            string          `json:"deal_number"`
	ClientName            string          `json:"client_name"`
	TotalOrderValue       decimal.Decimal `json:"total_order_value"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	ContributionMargin    decimal.Decimal `json:"contribution_margin"`
	GrossMarginPercent    decimal.Decimal `json:"gross_margin_percent"`
	MarginThresholdStatus string          `json:"margin_threshold_status"`
	ApprovedBy            uuid.UUID       `json:"approved_by"`
}

// NewDealApprovedEvent creates a new DealApprovedEvent
func NewDealApprovedEvent(deal *Deal, actor shared.Actor) *DealApprovedEvent {
	return &DealApprovedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeDealApproved, AggregateTypeDeal, deal.ID, actor),
		DealID:                deal.ID,
		DealNumber:            deal.DealNumber,
		ClientName:            deal.ClientName,
		TotalOrderValue:       deal.TotalOrderValue,
		TotalCost:             deal.TotalCost,
		ContributionMargin:    deal.ContributionMargin,
		GrossMarginPercent:    deal.GrossMarginPercent,
		MarginThresholdStatus: deal.MarginThresholdStatus.String(),
		ApprovedBy:            actor.ID,
	}
}

// EventType returns the event type name
func (e *DealApprovedEvent) EventType() string {
	return EventTypeDealApproved
}

// DealRejectedEvent is raised when a deal is rejected
type DealRejectedEvent struct {
	shared.BaseDomainEvent
	DealID     uuid.UUID `json:"deal_id"`
	DealNumber string    `json:"deal_number"`
	Reason     string    `json:"reason"`
	RejectedBy uuid.UUID `json:"rejected_by"`
}

// NewDealRejectedEvent creates a new DealRejectedEvent
func NewDealRejectedEvent(deal *Deal, actor shared.Actor) *DealRejectedEvent {
	return &DealRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealRejected, AggregateTypeDeal, deal.ID, actor),
		DealID:          deal.ID,
		DealNumber:      deal.DealNumber,
		Reason:          deal.RejectionReason,
		RejectedBy:      actor.ID,
	}
}

// EventType returns the event type name
func (e *DealRejectedEvent) EventType() string {
	return EventTypeDealRejected
}
