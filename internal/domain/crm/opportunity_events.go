package crm

import (
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOpportunity = "Opportunity"

// Event type constants
const (
	EventTypeOpportunityCreated        = "OpportunityCreated"
	EventTypeOpportunityQualified      = "OpportunityQualified"
	EventTypeOpportunitySentToDelivery = "OpportunitySentToDelivery"
	EventTypeOpportunityConverted      = "OpportunityConverted"
	EventTypeOpportunityLost           = "OpportunityLost"
)

// OpportunityCreatedEvent is raised when a new opportunity is created
type OpportunityCreatedEvent struct {
	shared.BaseDomainEvent
	OpportunityID   uuid.UUID       `json:"opportunity_id"`
	AdhocCode       string          `json:"adhoc_code"`
	ClientName      string          `json:"client_name"`
	TotalOrderValue decimal.Decimal `json:"total_order_value"`
}

// NewOpportunityCreatedEvent creates a new OpportunityCreatedEvent
func NewOpportunityCreatedEvent(opp *Opportunity, actor shared.Actor) *OpportunityCreatedEvent {
	return &OpportunityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunityCreated, AggregateTypeOpportunity, opp.ID, actor),
		OpportunityID:   opp.ID,
		AdhocCode:       opp.AdhocCode,
		ClientName:      opp.ClientName,
		TotalOrderValue: opp.TotalOrderValue,
	}
}

// EventType returns the event type name
func (e *OpportunityCreatedEvent) EventType() string {
	return EventTypeOpportunityCreated
}

// OpportunityQualifiedEvent is raised when an opportunity is qualified
type OpportunityQualifiedEvent struct {
	shared.BaseDomainEvent
	OpportunityID uuid.UUID `json:"opportunity_id"`
	AdhocCode     string    `json:"adhoc_code"`
}

// NewOpportunityQualifiedEvent creates a new OpportunityQualifiedEvent
func NewOpportunityQualifiedEvent(opp *Opportunity, actor shared.Actor) *OpportunityQualifiedEvent {
	return &OpportunityQualifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunityQualified, AggregateTypeOpportunity, opp.ID, actor),
		OpportunityID:   opp.ID,
		AdhocCode:       opp.AdhocCode,
	}
}

// EventType returns the event type name
func (e *OpportunityQualifiedEvent) EventType() string {
	return EventTypeOpportunityQualified
}

// OpportunitySentToDeliveryEvent is raised when an opportunity moves to delivery
type OpportunitySentToDeliveryEvent struct {
	shared.BaseDomainEvent
	OpportunityID uuid.UUID `json:"opportunity_id"`
	AdhocCode     string    `json:"adhoc_code"`
}

// NewOpportunitySentToDeliveryEvent creates a new OpportunitySentToDeliveryEvent
func NewOpportunitySentToDeliveryEvent(opp *Opportunity, actor shared.Actor) *OpportunitySentToDeliveryEvent {
	return &OpportunitySentToDeliveryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunitySentToDelivery, AggregateTypeOpportunity, opp.ID, actor),
		OpportunityID:   opp.ID,
		AdhocCode:       opp.AdhocCode,
	}
}

// EventType returns the event type name
func (e *OpportunitySentToDeliveryEvent) EventType() string {
	return EventTypeOpportunitySentToDelivery
}

// OpportunityConvertedEvent is raised when an opportunity converts to a deal.
// The conversion cascade consumes it to set the back-reference and emit the
// conversion notification.
type OpportunityConvertedEvent struct {
	shared.BaseDomainEvent
	OpportunityID uuid.UUID `json:"opportunity_id"`
	AdhocCode     string    `json:"adhoc_code"`
	DealID        uuid.UUID `json:"deal_id"`
	ClientName    string    `json:"client_name"`
}

// NewOpportunityConvertedEvent creates a new OpportunityConvertedEvent
func NewOpportunityConvertedEvent(opp *Opportunity, dealID uuid.UUID, actor shared.Actor) *OpportunityConvertedEvent {
	return &OpportunityConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunityConverted, AggregateTypeOpportunity, opp.ID, actor),
		OpportunityID:   opp.ID,
		AdhocCode:       opp.AdhocCode,
		DealID:          dealID,
		ClientName:      opp.ClientName,
	}
}

// EventType returns the event type name
func (e *OpportunityConvertedEvent) EventType() string {
	return EventTypeOpportunityConverted
}

// OpportunityLostEvent is raised when an opportunity is marked lost
type OpportunityLostEvent struct {
	shared.BaseDomainEvent
	OpportunityID uuid.UUID `json:"opportunity_id"`
	AdhocCode     string    `json:"adhoc_code"`
	Reason        string    `json:"reason"`
}

// NewOpportunityLostEvent creates a new OpportunityLostEvent
func NewOpportunityLostEvent(opp *Opportunity, actor shared.Actor) *OpportunityLostEvent {
	return &OpportunityLostEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOpportunityLost, AggregateTypeOpportunity, opp.ID, actor),
		OpportunityID:   opp.ID,
		AdhocCode:       opp.AdhocCode,
		Reason:          opp.LostReason,
	}
}

// EventType returns the event type name
func (e *OpportunityLostEvent) EventType() string {
	return EventTypeOpportunityLost
}
