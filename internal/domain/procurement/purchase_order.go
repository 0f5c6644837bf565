package procurement

import (
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POStatus represents the status of a purchase order
type POStatus string

const (
	POStatusDraft     POStatus = "Draft"
	POStatusApproved  POStatus = "Approved"
	POStatusIssued    POStatus = "Issued"
	POStatusCompleted POStatus = "Completed"
	POStatusCancelled POStatus = "Cancelled"
)

// IsValid checks if the status is a valid POStatus
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusApproved, POStatusIssued, POStatusCompleted, POStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of POStatus
func (s POStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s POStatus) IsTerminal() bool {
	return s == POStatusCompleted || s == POStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancelled is reachable from any non-terminal state.
func (s POStatus) CanTransitionTo(target POStatus) bool {
	if target == POStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case POStatusDraft:
		return target == POStatusApproved
	case POStatusApproved:
		return target == POStatusIssued
	case POStatusIssued:
		return target == POStatusCompleted
	}
	return false
}

// poTransitionRoles declares the role requirement per target status
var poTransitionRoles = map[POStatus][]shared.Role{
	POStatusApproved:  {shared.RoleFinance, shared.RoleDirector},
	POStatusIssued:    {shared.RoleFinance},
	POStatusCompleted: {shared.RoleFinance, shared.RoleDelivery},
	POStatusCancelled: {shared.RoleFinance, shared.RoleDirector},
}

// PurchaseOrder represents a vendor commitment aggregate root.
// Deal approval cascades a Draft stub; procurement then fills in the vendor
// and cost details and walks it through the lifecycle.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber   string // PO-<year>-<4-digit sequence>
	DealID     *uuid.UUID
	VendorName string
	Details    string

	ApprovedCost          decimal.Decimal
	AdjustedPayableAmount decimal.Decimal

	Status       POStatus
	ApprovedBy   *uuid.UUID
	ApprovedAt   *time.Time
	IssuedAt     *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewPurchaseOrder creates a new purchase order in Draft status
func NewPurchaseOrder(poNumber, vendorName string, approvedCost decimal.Decimal, actor shared.Actor) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if approvedCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Approved cost cannot be negative")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actor.ID),
		PONumber:          poNumber,
		VendorName:        vendorName,
		ApprovedCost:      approvedCost,
		Status:            POStatusDraft,
	}
	po.normalizeAdjustedAmount()

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po, actor))

	return po, nil
}

// NewPurchaseOrderStub creates the placeholder PO the deal-approval cascade
// spawns. Vendor and costs are filled in later by procurement.
func NewPurchaseOrderStub(poNumber string, dealID uuid.UUID, approvedCost decimal.Decimal, actor shared.Actor) (*PurchaseOrder, error) {
	po, err := NewPurchaseOrder(poNumber, "", approvedCost, actor)
	if err != nil {
		return nil, err
	}
	po.DealID = &dealID
	return po, nil
}

// LinkDeal attaches the deal this purchase order sources costs for
func (po *PurchaseOrder) LinkDeal(dealID uuid.UUID) {
	po.DealID = &dealID
	po.UpdatedAt = time.Now()
}

// normalizeAdjustedAmount defaults the adjusted payable amount to the
// approved cost when it has not been set
func (po *PurchaseOrder) normalizeAdjustedAmount() {
	if po.AdjustedPayableAmount.IsZero() {
		po.AdjustedPayableAmount = po.ApprovedCost
	}
}

// UpdateVendor sets the vendor details. Only allowed in Draft status.
func (po *PurchaseOrder) UpdateVendor(vendorName, details string) error {
	if po.Status != POStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update vendor on a non-draft purchase order")
	}
	po.VendorName = vendorName
	po.Details = details
	po.UpdatedAt = time.Now()
	return nil
}

// UpdateCosts sets the cost figures. Only allowed in Draft status.
// A zero adjusted amount falls back to the approved cost.
func (po *PurchaseOrder) UpdateCosts(approvedCost, adjustedPayableAmount decimal.Decimal) error {
	if po.Status != POStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update costs on a non-draft purchase order")
	}
	if approvedCost.IsNegative() || adjustedPayableAmount.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Costs cannot be negative")
	}
	po.ApprovedCost = approvedCost
	po.AdjustedPayableAmount = adjustedPayableAmount
	po.normalizeAdjustedAmount()
	po.UpdatedAt = time.Now()
	return nil
}

// Approve transitions the purchase order from Draft to Approved
func (po *PurchaseOrder) Approve(actor shared.Actor) error {
	if err := po.guardTransition(POStatusApproved, actor); err != nil {
		return err
	}
	if po.VendorName == "" {
		return shared.NewDomainError("NO_VENDOR", "Vendor must be set before approval")
	}

	now := time.Now()
	po.Status = POStatusApproved
	po.ApprovedBy = &actor.ID
	po.ApprovedAt = &now
	po.UpdatedAt = now
	return nil
}

// Issue transitions the purchase order from Approved to Issued
func (po *PurchaseOrder) Issue(actor shared.Actor) error {
	if err := po.guardTransition(POStatusIssued, actor); err != nil {
		return err
	}

	now := time.Now()
	po.Status = POStatusIssued
	po.IssuedAt = &now
	po.UpdatedAt = now

	po.AddDomainEvent(NewPurchaseOrderIssuedEvent(po, actor))

	return nil
}

// Complete transitions the purchase order from Issued to Completed
func (po *PurchaseOrder) Complete(actor shared.Actor) error {
	if err := po.guardTransition(POStatusCompleted, actor); err != nil {
		return err
	}

	now := time.Now()
	po.Status = POStatusCompleted
	po.CompletedAt = &now
	po.UpdatedAt = now
	return nil
}

// Cancel cancels the purchase order from any non-terminal state
func (po *PurchaseOrder) Cancel(reason string, actor shared.Actor) error {
	if err := po.guardTransition(POStatusCancelled, actor); err != nil {
		return err
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	po.Status = POStatusCancelled
	po.CancelledAt = &now
	po.CancelReason = reason
	po.UpdatedAt = now
	return nil
}

func (po *PurchaseOrder) guardTransition(target POStatus, actor shared.Actor) error {
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move purchase order from %s to %s", po.Status, target))
	}
	if !actor.Can(poTransitionRoles[target]...) {
		return shared.ErrRoleNotAllowed
	}
	return nil
}
