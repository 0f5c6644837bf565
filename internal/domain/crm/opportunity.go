package crm

import (
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpportunityStatus represents the status of a sales opportunity.
// The literal values are part of the external contract and are case-sensitive.
type OpportunityStatus string

const (
	OpportunityStatusNew             OpportunityStatus = "New"
	OpportunityStatusQualified       OpportunityStatus = "Qualified"
	OpportunityStatusSentToDelivery  OpportunityStatus = "Sent to Delivery"
	OpportunityStatusConvertedToDeal OpportunityStatus = "Converted to Deal"
	OpportunityStatusLost            OpportunityStatus = "Lost"
)

// IsValid checks if the status is a valid OpportunityStatus
func (s OpportunityStatus) IsValid() bool {
	switch s {
	case OpportunityStatusNew, OpportunityStatusQualified, OpportunityStatusSentToDelivery,
		OpportunityStatusConvertedToDeal, OpportunityStatusLost:
		return true
	}
	return false
}

// String returns the string representation of OpportunityStatus
func (s OpportunityStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OpportunityStatus) CanTransitionTo(target OpportunityStatus) bool {
	switch s {
	case OpportunityStatusNew:
		return target == OpportunityStatusQualified || target == OpportunityStatusLost
	case OpportunityStatusQualified:
		return target == OpportunityStatusSentToDelivery || target == OpportunityStatusLost
	case OpportunityStatusSentToDelivery:
		return target == OpportunityStatusConvertedToDeal
	case OpportunityStatusConvertedToDeal, OpportunityStatusLost:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if the status is terminal
func (s OpportunityStatus) IsTerminal() bool {
	return s == OpportunityStatusConvertedToDeal || s == OpportunityStatusLost
}

// opportunityTransitionRoles declares the role requirement per target status.
// Gating lives here, next to the table, not inside the transition methods.
var opportunityTransitionRoles = map[OpportunityStatus][]shared.Role{
	OpportunityStatusQualified:       {shared.RoleSales},
	OpportunityStatusSentToDelivery:  {shared.RoleSales},
	OpportunityStatusConvertedToDeal: {shared.RoleSales, shared.RoleDelivery},
	OpportunityStatusLost:            {},
}

// OpportunityCosts is the cost vector used by the gross-profit derivation.
// Marketing and contingency may be supplied as a percentage of the total
// order value; a supplied percentage always wins over a stored amount.
type OpportunityCosts struct {
	TrainerPO          decimal.Decimal  `json:"trainer_po"`
	LabPO              decimal.Decimal  `json:"lab_po"`
	CourseMaterial     decimal.Decimal  `json:"course_material"`
	Royalty            decimal.Decimal  `json:"royalty"`
	Travel             decimal.Decimal  `json:"travel"`
	Accommodation      decimal.Decimal  `json:"accommodation"`
	PerDiem            decimal.Decimal  `json:"per_diem"`
	LocalConveyance    decimal.Decimal  `json:"local_conveyance"`
	MarketingAmount    decimal.Decimal  `json:"marketing_amount"`
	ContingencyAmount  decimal.Decimal  `json:"contingency_amount"`
	MarketingPercent   *decimal.Decimal `json:"marketing_percent,omitempty"`
	ContingencyPercent *decimal.Decimal `json:"contingency_percent,omitempty"`
}

// Total sums the cost vector after percentage resolution
func (c OpportunityCosts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.Decimal{
		c.TrainerPO, c.LabPO, c.CourseMaterial, c.Royalty, c.Travel,
		c.Accommodation, c.PerDiem, c.LocalConveyance, c.MarketingAmount, c.ContingencyAmount,
	} {
		total = total.Add(v)
	}
	return total
}

// Opportunity represents a sales lead aggregate root.
// It moves through a qualification pipeline and either converts to a Deal
// or is marked Lost with a reason.
type Opportunity struct {
	shared.BaseAggregateRoot
	AdhocCode  string // GKT<yy>CH<mm><seq3>, assigned at creation
	Name       string
	ClientName string

	TotalOrderValue decimal.Decimal
	Costs           OpportunityCosts
	TotalCosts      decimal.Decimal
	FinalGP         decimal.Decimal
	GPPercent       decimal.Decimal

	Status     OpportunityStatus
	LostReason string

	// Back-reference set by the conversion cascade
	DealID      *uuid.UUID
	ConvertedAt *time.Time

	// Transition audit fields: each transition records actor and timestamp
	QualifiedBy      *uuid.UUID
	QualifiedAt      *time.Time
	SentToDeliveryBy *uuid.UUID
	SentToDeliveryAt *time.Time
	ConvertedBy      *uuid.UUID
	LostBy           *uuid.UUID
	LostAt           *time.Time
}

// NewOpportunity creates a new opportunity in New status
func NewOpportunity(adhocCode, name, clientName string, totalOrderValue decimal.Decimal, actor shared.Actor) (*Opportunity, error) {
	if adhocCode == "" {
		return nil, shared.NewDomainError("INVALID_ADHOC_CODE", "Adhoc code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Opportunity name cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}
	if totalOrderValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER_VALUE", "Total order value cannot be negative")
	}

	opp := &Opportunity{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actor.ID),
		AdhocCode:         adhocCode,
		Name:              name,
		ClientName:        clientName,
		TotalOrderValue:   totalOrderValue,
		Status:            OpportunityStatusNew,
		TotalCosts:        decimal.Zero,
		FinalGP:           totalOrderValue,
	}
	opp.RecalculateGP()

	opp.AddDomainEvent(NewOpportunityCreatedEvent(opp, actor))

	return opp, nil
}

// UpdateCosts replaces the cost vector and re-runs the GP derivation
func (o *Opportunity) UpdateCosts(costs OpportunityCosts) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update costs of a closed opportunity")
	}
	o.Costs = costs
	o.RecalculateGP()
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateTotalOrderValue updates the TOV and re-runs the GP derivation
func (o *Opportunity) UpdateTotalOrderValue(tov decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a closed opportunity")
	}
	if tov.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER_VALUE", "Total order value cannot be negative")
	}
	o.TotalOrderValue = tov
	o.RecalculateGP()
	o.UpdatedAt = time.Now()
	return nil
}

// RecalculateGP re-runs the gross-profit derivation from the raw inputs.
// Percentage inputs for marketing and contingency win over stored amounts.
// GPPercent is only recomputed when the order value is positive; otherwise
// the prior value is retained.
func (o *Opportunity) RecalculateGP() {
	hundred := decimal.NewFromInt(100)
	if o.Costs.MarketingPercent != nil {
		o.Costs.MarketingAmount = o.TotalOrderValue.Mul(*o.Costs.MarketingPercent).Div(hundred).Round(2)
	}
	if o.Costs.ContingencyPercent != nil {
		o.Costs.ContingencyAmount = o.TotalOrderValue.Mul(*o.Costs.ContingencyPercent).Div(hundred).Round(2)
	}

	o.TotalCosts = o.Costs.Total()
	o.FinalGP = o.TotalOrderValue.Sub(o.TotalCosts)
	if o.TotalOrderValue.IsPositive() {
		o.GPPercent = o.FinalGP.Div(o.TotalOrderValue).Mul(hundred)
	}
}

// Qualify transitions the opportunity from New to Qualified
func (o *Opportunity) Qualify(actor shared.Actor) error {
	if !o.Status.CanTransitionTo(OpportunityStatusQualified) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot qualify opportunity in %s status", o.Status))
	}
	if !actor.Can(opportunityTransitionRoles[OpportunityStatusQualified]...) {
		return shared.ErrRoleNotAllowed
	}

	now := time.Now()
	o.Status = OpportunityStatusQualified
	o.QualifiedBy = &actor.ID
	o.QualifiedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOpportunityQualifiedEvent(o, actor))

	return nil
}

// SendToDelivery transitions the opportunity from Qualified to Sent to Delivery
func (o *Opportunity) SendToDelivery(actor shared.Actor) error {
	if !o.Status.CanTransitionTo(OpportunityStatusSentToDelivery) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send opportunity to delivery in %s status", o.Status))
	}
	if !actor.Can(opportunityTransitionRoles[OpportunityStatusSentToDelivery]...) {
		return shared.ErrRoleNotAllowed
	}

	now := time.Now()
	o.Status = OpportunityStatusSentToDelivery
	o.SentToDeliveryBy = &actor.ID
	o.SentToDeliveryAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOpportunitySentToDeliveryEvent(o, actor))

	return nil
}

// Convert transitions the opportunity to Converted to Deal.
// The Deal must already be persisted; the conversion cascade sets the
// back-reference from this opportunity to the deal.
func (o *Opportunity) Convert(dealID uuid.UUID, actor shared.Actor) error {
	if !o.Status.CanTransitionTo(OpportunityStatusConvertedToDeal) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert opportunity in %s status", o.Status))
	}
	if !actor.Can(opportunityTransitionRoles[OpportunityStatusConvertedToDeal]...) {
		return shared.ErrRoleNotAllowed
	}
	if dealID == uuid.Nil {
		return shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}

	now := time.Now()
	o.Status = OpportunityStatusConvertedToDeal
	o.ConvertedBy = &actor.ID
	o.UpdatedAt = now

	o.AddDomainEvent(NewOpportunityConvertedEvent(o, dealID, actor))

	return nil
}

// LinkDeal sets the back-reference to the converting deal.
// Called by the conversion cascade; idempotent when already linked.
func (o *Opportunity) LinkDeal(dealID uuid.UUID) bool {
	if o.DealID != nil {
		return false
	}
	now := time.Now()
	o.DealID = &dealID
	o.ConvertedAt = &now
	o.UpdatedAt = now
	return true
}

// MarkLost transitions the opportunity to Lost. A reason is required.
func (o *Opportunity) MarkLost(reason string, actor shared.Actor) error {
	if !o.Status.CanTransitionTo(OpportunityStatusLost) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark opportunity lost in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Lost reason is required")
	}

	now := time.Now()
	o.Status = OpportunityStatusLost
	o.LostReason = reason
	o.LostBy = &actor.ID
	o.LostAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOpportunityLostEvent(o, actor))

	return nil
}

// IsConverted returns true if the opportunity has been converted to a deal
func (o *Opportunity) IsConverted() bool {
	return o.Status == OpportunityStatusConvertedToDeal
}

// IsLost returns true if the opportunity is lost
func (o *Opportunity) IsLost() bool {
	return o.Status == OpportunityStatusLost
}
