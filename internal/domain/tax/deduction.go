package tax

import (
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeTaxDeduction = "TaxDeduction"

// Event type constants
const EventTypeTaxDeductionRecorded = "TaxDeductionRecorded"

// TaxDeduction is the withholding record tied 1:1 to a payable.
// Invariant: NetPayableAmount = PaymentAmount - TDSAmount.
type TaxDeduction struct {
	shared.BaseAggregateRoot
	PayableID  uuid.UUID
	VendorID   uuid.UUID
	VendorName string

	FinancialYear     string
	Section           Section
	ApplicablePercent decimal.Decimal
	PaymentAmount     decimal.Decimal
	TDSAmount         decimal.Decimal
	NetPayableAmount  decimal.Decimal
	ThresholdStatus   ThresholdStatus
	ComplianceStatus  ComplianceStatus

	OverriddenBy *uuid.UUID
	OverriddenAt *time.Time
}

// NewTaxDeduction records the outcome of a withholding computation
func NewTaxDeduction(payableID, vendorID uuid.UUID, vendorName, financialYear string, result Result, actor shared.Actor) (*TaxDeduction, error) {
	if payableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYABLE", "Payable ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if financialYear == "" {
		return nil, shared.NewDomainError("INVALID_FY", "Financial year cannot be empty")
	}

	payment := result.TDSAmount.Add(result.NetPayableAmount)
	d := &TaxDeduction{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actor.ID),
		PayableID:         payableID,
		VendorID:          vendorID,
		VendorName:        vendorName,
		FinancialYear:     financialYear,
		Section:           result.Section,
		ApplicablePercent: result.ApplicablePercent,
		PaymentAmount:     payment,
		TDSAmount:         result.TDSAmount,
		NetPayableAmount:  result.NetPayableAmount,
		ThresholdStatus:   result.ThresholdStatus,
		ComplianceStatus:  result.ComplianceStatus,
	}

	d.AddDomainEvent(NewTaxDeductionRecordedEvent(d, actor))

	return d, nil
}

// ApplyDirectorOverride recomputes the deduction at the normal section rate,
// bypassing the PAN-absence penalty, and stamps the overriding director.
func (d *TaxDeduction) ApplyDirectorOverride(in Input, actor shared.Actor) error {
	if actor.Role != shared.RoleDirector && actor.Role != shared.RoleAdmin {
		return shared.ErrRoleNotAllowed
	}
	if d.ComplianceStatus != CompliancePendingPAN {
		return shared.NewDomainError("INVALID_STATE", "Override only applies to deductions pending PAN")
	}

	in.DirectorOverride = true
	result := Compute(in)

	now := time.Now()
	d.Section = result.Section
	d.ApplicablePercent = result.ApplicablePercent
	d.TDSAmount = result.TDSAmount
	d.NetPayableAmount = result.NetPayableAmount
	d.ThresholdStatus = result.ThresholdStatus
	d.ComplianceStatus = result.ComplianceStatus
	d.OverriddenBy = &actor.ID
	d.OverriddenAt = &now
	d.UpdatedAt = now

	return nil
}

// TaxDeductionRecordedEvent is raised when a withholding record is created
type TaxDeductionRecordedEvent struct {
	shared.BaseDomainEvent
	DeductionID      uuid.UUID       `json:"deduction_id"`
	PayableID        uuid.UUID       `json:"payable_id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	TDSAmount        decimal.Decimal `json:"tds_amount"`
	NetPayableAmount decimal.Decimal `json:"net_payable_amount"`
	ComplianceStatus string          `json:"compliance_status"`
}

// NewTaxDeductionRecordedEvent creates a new TaxDeductionRecordedEvent
func NewTaxDeductionRecordedEvent(d *TaxDeduction, actor shared.Actor) *TaxDeductionRecordedEvent {
	return &TaxDeductionRecordedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeTaxDeductionRecorded, AggregateTypeTaxDeduction, d.ID, actor),
		DeductionID:      d.ID,
		PayableID:        d.PayableID,
		VendorID:         d.VendorID,
		TDSAmount:        d.TDSAmount,
		NetPayableAmount: d.NetPayableAmount,
		ComplianceStatus: string(d.ComplianceStatus),
	}
}

// EventType returns the event type name
func (e *TaxDeductionRecordedEvent) EventType() string {
	return EventTypeTaxDeductionRecorded
}
