package procurement

import (
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableStatus represents the status of a vendor payable.
// The literal values are part of the external contract.
type PayableStatus string

const (
	PayableStatusPending   PayableStatus = "Pending"
	PayableStatusOnHold    PayableStatus = "On Hold"
	PayableStatusReleased  PayableStatus = "Released"
	PayableStatusPaid      PayableStatus = "Paid"
	PayableStatusCancelled PayableStatus = "Cancelled"
)

// IsValid checks if the status is a valid PayableStatus
func (s PayableStatus) IsValid() bool {
	switch s {
	case PayableStatusPending, PayableStatusOnHold, PayableStatusReleased,
		PayableStatusPaid, PayableStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PayableStatus
func (s PayableStatus) String() string {
	return string(s)
}

// Payable represents a vendor payment obligation aggregate root.
// Status is derived from the hold/release flags and the outstanding amount;
// the derivation runs after every mutation so the invariant
// outstanding = adjusted - paid always holds.
type Payable struct {
	shared.BaseAggregateRoot
	VendorID        uuid.UUID
	VendorName      string
	VendorPAN       string // empty when the vendor has not furnished a PAN
	VendorType      tax.VendorType
	NatureOfService tax.NatureOfService
	PurchaseOrderID *uuid.UUID
	PayoutReference string // VPR-<year>-<4-digit sequence>, assigned on release

	AdjustedPayableAmount decimal.Decimal
	PaidAmount            decimal.Decimal
	OutstandingAmount     decimal.Decimal

	HoldFlag    bool
	HoldReason  string
	ReleaseFlag bool
	Status      PayableStatus

	ReleasedAt  *time.Time
	PaidAt      *time.Time
	CancelledAt *time.Time
}

// NewPayable creates a new payable in Pending status
func NewPayable(vendorID uuid.UUID, vendorName, vendorPAN string, vendorType tax.VendorType, natureOfService tax.NatureOfService, amount decimal.Decimal, actor shared.Actor) (*Payable, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if !vendorType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VENDOR_TYPE", "Unknown vendor type")
	}
	if !natureOfService.IsValid() {
		return nil, shared.NewDomainError("INVALID_NATURE_OF_SERVICE", "Unknown nature of service")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payable amount must be positive")
	}

	p := &Payable{
		BaseAggregateRoot:     shared.NewBaseAggregateRootWithCreator(actor.ID),
		VendorID:              vendorID,
		VendorName:            vendorName,
		VendorPAN:             vendorPAN,
		VendorType:            vendorType,
		NatureOfService:       natureOfService,
		AdjustedPayableAmount: amount,
		PaidAmount:            decimal.Zero,
	}
	p.recalculate()

	p.AddDomainEvent(NewPayableCreatedEvent(p, actor))

	return p, nil
}

// LinkPurchaseOrder ties the payable to its purchase order
func (p *Payable) LinkPurchaseOrder(poID uuid.UUID) {
	p.PurchaseOrderID = &poID
	p.UpdatedAt = time.Now()
}

// HasPAN returns true when the vendor has furnished a PAN
func (p *Payable) HasPAN() bool {
	return p.VendorPAN != ""
}

// recalculate re-derives outstanding amount and status.
// Hold always wins over release; Cancelled is sticky.
func (p *Payable) recalculate() {
	p.OutstandingAmount = p.AdjustedPayableAmount.Sub(p.PaidAmount)

	if p.Status == PayableStatusCancelled {
		return
	}
	switch {
	case p.HoldFlag:
		p.Status = PayableStatusOnHold
	case p.OutstandingAmount.IsZero() && p.PaidAmount.IsPositive():
		p.Status = PayableStatusPaid
	case p.ReleaseFlag:
		p.Status = PayableStatusReleased
	default:
		p.Status = PayableStatusPending
	}
}

// ApplyWithholding replaces the payable obligation with the TDS-derived net
// amount. Run by the tax cascade once per payable.
func (p *Payable) ApplyWithholding(netAmount decimal.Decimal) error {
	if netAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Net payable amount cannot be negative")
	}
	if p.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply withholding after payments have started")
	}
	p.AdjustedPayableAmount = netAmount
	p.recalculate()
	p.UpdatedAt = time.Now()
	return nil
}

// Hold places the payable on hold. Hold wins over a previously set release.
func (p *Payable) Hold(reason string, actor shared.Actor) error {
	if p.Status == PayableStatusCancelled || p.Status == PayableStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot hold a settled payable")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Hold reason is required")
	}
	p.HoldFlag = true
	p.HoldReason = reason
	p.recalculate()
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPayableHeldEvent(p, actor))

	return nil
}

// Release clears any hold and marks the payable ready for disbursement.
// The payout reference is assigned by the service on first release.
func (p *Payable) Release(actor shared.Actor) error {
	if p.Status == PayableStatusCancelled || p.Status == PayableStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot release a settled payable")
	}
	now := time.Now()
	p.HoldFlag = false
	p.HoldReason = ""
	p.ReleaseFlag = true
	p.ReleasedAt = &now
	p.recalculate()
	p.UpdatedAt = now

	p.AddDomainEvent(NewPayableReleasedEvent(p, actor))

	return nil
}

// AssignPayoutReference sets the vendor payout reference once
func (p *Payable) AssignPayoutReference(ref string) {
	if p.PayoutReference != "" {
		return
	}
	p.PayoutReference = ref
	p.UpdatedAt = time.Now()
}

// RecordPayment applies a disbursement against the payable
func (p *Payable) RecordPayment(amount decimal.Decimal, actor shared.Actor) error {
	if p.Status == PayableStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled payable")
	}
	if p.HoldFlag {
		return shared.NewDomainError("PAYABLE_ON_HOLD", "Cannot pay a payable on hold")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(p.OutstandingAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment exceeds outstanding amount")
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	p.recalculate()
	if p.Status == PayableStatusPaid {
		now := time.Now()
		p.PaidAt = &now
	}
	p.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels the payable before settlement
func (p *Payable) Cancel(reason string, actor shared.Actor) error {
	if p.Status == PayableStatusPaid || p.Status == PayableStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a settled payable")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	p.Status = PayableStatusCancelled
	p.CancelledAt = &now
	p.UpdatedAt = now
	return nil
}
