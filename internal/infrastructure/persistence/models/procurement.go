package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	PONumber   string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	DealID     *uuid.UUID `gorm:"type:uuid;index"`
	VendorName string     `gorm:"type:varchar(200)"`
	Details    string     `gorm:"type:text"`

	ApprovedCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AdjustedPayableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	Status       procurement.POStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	ApprovedBy   *uuid.UUID           `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	IssuedAt     *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	po := &procurement.PurchaseOrder{
		PONumber:              m.PONumber,
		DealID:                m.DealID,
		VendorName:            m.VendorName,
		Details:               m.Details,
		ApprovedCost:          m.ApprovedCost,
		AdjustedPayableAmount: m.AdjustedPayableAmount,
		Status:                m.Status,
		ApprovedBy:            m.ApprovedBy,
		ApprovedAt:            m.ApprovedAt,
		IssuedAt:              m.IssuedAt,
		CompletedAt:           m.CompletedAt,
		CancelledAt:           m.CancelledAt,
		CancelReason:          m.CancelReason,
	}
	m.PopulateAggregateRoot(&po.BaseAggregateRoot)
	return po
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(po *procurement.PurchaseOrder) {
	m.FromDomainAggregateRoot(po.BaseAggregateRoot)
	m.PONumber = po.PONumber
	m.DealID = po.DealID
	m.VendorName = po.VendorName
	m.Details = po.Details
	m.ApprovedCost = po.ApprovedCost
	m.AdjustedPayableAmount = po.AdjustedPayableAmount
	m.Status = po.Status
	m.ApprovedBy = po.ApprovedBy
	m.ApprovedAt = po.ApprovedAt
	m.IssuedAt = po.IssuedAt
	m.CompletedAt = po.CompletedAt
	m.CancelledAt = po.CancelledAt
	m.CancelReason = po.CancelReason
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder.
func PurchaseOrderModelFromDomain(po *procurement.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(po)
	return m
}

// PayableModel is the persistence model for the Payable aggregate root.
type PayableModel struct {
	AggregateModel
	VendorID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	VendorName      string              `gorm:"type:varchar(200);not null"`
	VendorPAN       string              `gorm:"type:varchar(20)"`
	VendorType      tax.VendorType      `gorm:"type:varchar(20);not null"`
	NatureOfService tax.NatureOfService `gorm:"type:varchar(30);not null"`
	PurchaseOrderID *uuid.UUID          `gorm:"type:uuid;index"`
	PayoutReference string              `gorm:"type:varchar(20);index"`

	AdjustedPayableAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OutstandingAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`

	HoldFlag    bool                      `gorm:"not null;default:false"`
	HoldReason  string                    `gorm:"type:varchar(500)"`
	ReleaseFlag bool                      `gorm:"not null;default:false"`
	Status      procurement.PayableStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`

	ReleasedAt  *time.Time
	PaidAt      *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (PayableModel) TableName() string {
	return "payables"
}

// ToDomain converts the persistence model to a domain Payable entity.
func (m *PayableModel) ToDomain() *procurement.Payable {
	p := &procurement.Payable{
		VendorID:              m.VendorID,
		VendorName:            m.VendorName,
		VendorPAN:             m.VendorPAN,
		VendorType:            m.VendorType,
		NatureOfService:       m.NatureOfService,
		PurchaseOrderID:       m.PurchaseOrderID,
		PayoutReference:       m.PayoutReference,
		AdjustedPayableAmount: m.AdjustedPayableAmount,
		PaidAmount:            m.PaidAmount,
		OutstandingAmount:     m.OutstandingAmount,
		HoldFlag:              m.HoldFlag,
		HoldReason:            m.HoldReason,
		ReleaseFlag:           m.ReleaseFlag,
		Status:                m.Status,
		ReleasedAt:            m.ReleasedAt,
		PaidAt:                m.PaidAt,
		CancelledAt:           m.CancelledAt,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Payable entity.
func (m *PayableModel) FromDomain(p *procurement.Payable) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.VendorID = p.VendorID
	m.VendorName = p.VendorName
	m.VendorPAN = p.VendorPAN
	m.VendorType = p.VendorType
	m.NatureOfService = p.NatureOfService
	m.PurchaseOrderID = p.PurchaseOrderID
	m.PayoutReference = p.PayoutReference
	m.AdjustedPayableAmount = p.AdjustedPayableAmount
	m.PaidAmount = p.PaidAmount
	m.OutstandingAmount = p.OutstandingAmount
	m.HoldFlag = p.HoldFlag
	m.HoldReason = p.HoldReason
	m.ReleaseFlag = p.ReleaseFlag
	m.Status = p.Status
	m.ReleasedAt = p.ReleasedAt
	m.PaidAt = p.PaidAt
	m.CancelledAt = p.CancelledAt
}

// PayableModelFromDomain creates a new persistence model from a domain Payable.
func PayableModelFromDomain(p *procurement.Payable) *PayableModel {
	m := &PayableModel{}
	m.FromDomain(p)
	return m
}
