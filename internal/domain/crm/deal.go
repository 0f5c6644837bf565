package crm

import (
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the approval state of a deal
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

// IsValid checks if the status is a valid ApprovalStatus
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ApprovalStatus
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the approval decision has been made
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// MarginThresholdStatus buckets the gross margin percentage.
// The band is deliberately wide: exactly 15% and exactly 25% are both
// "At Threshold"; confirmed with the business owner before narrowing.
type MarginThresholdStatus string

const (
	MarginAboveThreshold MarginThresholdStatus = "Above Threshold"
	MarginAtThreshold    MarginThresholdStatus = "At Threshold"
	MarginBelowThreshold MarginThresholdStatus = "Below Threshold"
)

// String returns the string representation of MarginThresholdStatus
func (s MarginThresholdStatus) String() string {
	return string(s)
}

// Margin threshold boundaries (percent)
var (
	marginLowerBound = decimal.NewFromInt(15)
	marginUpperBound = decimal.NewFromInt(25)
)

// BucketMargin maps a gross margin percentage to its threshold bucket
func BucketMargin(grossMarginPercent decimal.Decimal) MarginThresholdStatus {
	switch {
	case grossMarginPercent.LessThan(marginLowerBound):
		return MarginBelowThreshold
	case grossMarginPercent.LessThanOrEqual(marginUpperBound):
		return MarginAtThreshold
	default:
		return MarginAboveThreshold
	}
}

// dealApprovalRoles declares who may decide a deal approval.
// Director-only approval is additionally enforced when the governance gate
// has raised DirectorApprovalRequired on the deal.
var dealApprovalRoles = []shared.Role{shared.RoleFinance, shared.RoleDirector}

// DealCosts is the itemized cost vector of a deal
type DealCosts struct {
	Trainer     decimal.Decimal `json:"trainer"`
	Lab         decimal.Decimal `json:"lab"`
	Logistics   decimal.Decimal `json:"logistics"`
	Content     decimal.Decimal `json:"content"`
	Contingency decimal.Decimal `json:"contingency"`
	Travel      decimal.Decimal `json:"travel"`
	Marketing   decimal.Decimal `json:"marketing"`
	Other       decimal.Decimal `json:"other"`
}

// Total sums the cost vector
func (c DealCosts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.Decimal{
		c.Trainer, c.Lab, c.Logistics, c.Content,
		c.Contingency, c.Travel, c.Marketing, c.Other,
	} {
		total = total.Add(v)
	}
	return total
}

// Deal represents an approved commercial commitment aggregate root.
// It is derived from an Opportunity or created directly, and its margin
// fields are recomputed on every save of the raw inputs.
type Deal struct {
	shared.BaseAggregateRoot
	DealNumber    string // DEAL-<year>-<4-digit sequence>
	OpportunityID *uuid.UUID
	ClientName    string
	Description   string

	TotalOrderValue decimal.Decimal
	Costs           DealCosts

	// Derived fields
	TotalCost             decimal.Decimal
	ContributionMargin    decimal.Decimal
	BreakEvenValue        decimal.Decimal
	GrossMarginPercent    decimal.Decimal
	MarginThresholdStatus MarginThresholdStatus

	ApprovalStatus           ApprovalStatus
	DirectorApprovalRequired bool
	ApprovedBy               *uuid.UUID
	ApprovedAt               *time.Time
	RejectedBy               *uuid.UUID
	RejectedAt               *time.Time
	RejectionReason          string
}

// NewDeal creates a new deal in Pending approval status
func NewDeal(dealNumber, clientName string, totalOrderValue decimal.Decimal, costs DealCosts, actor shared.Actor) (*Deal, error) {
	if dealNumber == "" {
		return nil, shared.NewDomainError("INVALID_DEAL_NUMBER", "Deal number cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}
	if totalOrderValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER_VALUE", "Total order value cannot be negative")
	}

	deal := &Deal{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actor.ID),
		DealNumber:        dealNumber,
		ClientName:        clientName,
		TotalOrderValue:   totalOrderValue,
		Costs:             costs,
		ApprovalStatus:    ApprovalStatusPending,
	}
	deal.RecalculateMargin()

	deal.AddDomainEvent(NewDealCreatedEvent(deal, actor))

	return deal, nil
}

// LinkOpportunity records the originating opportunity
func (d *Deal) LinkOpportunity(opportunityID uuid.UUID) {
	d.OpportunityID = &opportunityID
	d.UpdatedAt = time.Now()
}

// UpdateCommercials replaces the raw inputs and re-runs the margin derivation.
// Only allowed while approval is pending.
func (d *Deal) UpdateCommercials(totalOrderValue decimal.Decimal, costs DealCosts, actor shared.Actor) error {
	if d.ApprovalStatus.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a decided deal")
	}
	if totalOrderValue.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER_VALUE", "Total order value cannot be negative")
	}

	d.TotalOrderValue = totalOrderValue
	d.Costs = costs
	d.RecalculateMargin()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDealUpdatedEvent(d, actor))

	return nil
}

// RecalculateMargin re-runs the margin derivation:
//
//	totalCost          = sum of itemized costs
//	contributionMargin = totalOrderValue - totalCost
//	breakEvenValue     = totalCost
//	grossMarginPercent = contributionMargin / totalOrderValue * 100 (0 when TOV <= 0)
func (d *Deal) RecalculateMargin() {
	d.TotalCost = d.Costs.Total()
	d.ContributionMargin = d.TotalOrderValue.Sub(d.TotalCost)
	d.BreakEvenValue = d.TotalCost
	if d.TotalOrderValue.IsPositive() {
		d.GrossMarginPercent = d.ContributionMargin.Div(d.TotalOrderValue).Mul(decimal.NewFromInt(100))
	} else {
		d.GrossMarginPercent = decimal.Zero
	}
	d.MarginThresholdStatus = BucketMargin(d.GrossMarginPercent)
}

// RequireDirectorApproval is raised by the governance gate when the deal
// is flagged as loss-making or otherwise risky
func (d *Deal) RequireDirectorApproval() {
	if d.DirectorApprovalRequired {
		return
	}
	d.DirectorApprovalRequired = true
	d.UpdatedAt = time.Now()
}

// ClearDirectorApproval releases the director gate after a re-evaluation
// no longer flags the deal
func (d *Deal) ClearDirectorApproval() {
	if !d.DirectorApprovalRequired {
		return
	}
	d.DirectorApprovalRequired = false
	d.UpdatedAt = time.Now()
}

// Approve decides the deal as Approved, recording approver and timestamp.
// When the governance gate requires director approval, only a director may
// approve.
func (d *Deal) Approve(actor shared.Actor) error {
	if d.ApprovalStatus != ApprovalStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve deal in %s status", d.ApprovalStatus))
	}
	if !actor.Can(dealApprovalRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if d.DirectorApprovalRequired && actor.Role != shared.RoleDirector && actor.Role != shared.RoleAdmin {
		return shared.NewDomainError("DIRECTOR_APPROVAL_REQUIRED", "Deal requires director approval")
	}

	now := time.Now()
	d.ApprovalStatus = ApprovalStatusApproved
	d.ApprovedBy = &actor.ID
	d.ApprovedAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewDealApprovedEvent(d, actor))

	return nil
}

// Reject decides the deal as Rejected with a reason
func (d *Deal) Reject(reason string, actor shared.Actor) error {
	if d.ApprovalStatus != ApprovalStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject deal in %s status", d.ApprovalStatus))
	}
	if !actor.Can(dealApprovalRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	d.ApprovalStatus = ApprovalStatusRejected
	d.RejectedBy = &actor.ID
	d.RejectedAt = &now
	d.RejectionReason = reason
	d.UpdatedAt = now

	d.AddDomainEvent(NewDealRejectedEvent(d, actor))

	return nil
}

// IsApproved returns true if the deal has been approved
func (d *Deal) IsApproved() bool {
	return d.ApprovalStatus == ApprovalStatusApproved
}

// IsLossMaking returns true when the contribution margin is negative
func (d *Deal) IsLossMaking() bool {
	return d.ContributionMargin.IsNegative()
}
