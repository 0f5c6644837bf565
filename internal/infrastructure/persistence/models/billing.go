package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber    string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	ProgramID        *uuid.UUID `gorm:"type:uuid;index"`
	DealID           *uuid.UUID `gorm:"type:uuid;index"`
	SourceDocumentID *uuid.UUID `gorm:"type:uuid;index"`

	ClientName    string          `gorm:"type:varchar(200);not null;index"`
	InvoiceAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`
	GSTPercent    decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxOverridden bool            `gorm:"not null;default:false"`

	InvoiceDate time.Time `gorm:"not null"`
	DueDate     time.Time `gorm:"not null;index"`

	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	DuplicateFlag bool                  `gorm:"not null;default:false;index"`

	IRN            string `gorm:"type:varchar(100)"`
	EWayBillNumber string `gorm:"type:varchar(50)"`

	SentAt       *time.Time
	PaidAt       *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber:    m.InvoiceNumber,
		ProgramID:        m.ProgramID,
		DealID:           m.DealID,
		SourceDocumentID: m.SourceDocumentID,
		ClientName:       m.ClientName,
		InvoiceAmount:    m.InvoiceAmount,
		GSTPercent:       m.GSTPercent,
		TaxAmount:        m.TaxAmount,
		TotalAmount:      m.TotalAmount,
		TaxOverridden:    m.TaxOverridden,
		InvoiceDate:      m.InvoiceDate,
		DueDate:          m.DueDate,
		Status:           m.Status,
		DuplicateFlag:    m.DuplicateFlag,
		IRN:              m.IRN,
		EWayBillNumber:   m.EWayBillNumber,
		SentAt:           m.SentAt,
		PaidAt:           m.PaidAt,
		CancelReason:     m.CancelReason,
	}
	m.PopulateAggregateRoot(&inv.BaseAggregateRoot)
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.ProgramID = inv.ProgramID
	m.DealID = inv.DealID
	m.SourceDocumentID = inv.SourceDocumentID
	m.ClientName = inv.ClientName
	m.InvoiceAmount = inv.InvoiceAmount
	m.GSTPercent = inv.GSTPercent
	m.TaxAmount = inv.TaxAmount
	m.TotalAmount = inv.TotalAmount
	m.TaxOverridden = inv.TaxOverridden
	m.InvoiceDate = inv.InvoiceDate
	m.DueDate = inv.DueDate
	m.Status = inv.Status
	m.DuplicateFlag = inv.DuplicateFlag
	m.IRN = inv.IRN
	m.EWayBillNumber = inv.EWayBillNumber
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.CancelReason = inv.CancelReason
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// ReceivableModel is the persistence model for the Receivable aggregate root.
type ReceivableModel struct {
	AggregateModel
	InvoiceID  *uuid.UUID `gorm:"type:uuid;index"`
	ClientName string     `gorm:"type:varchar(200);not null;index"`

	InvoiceAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`

	DueDate     time.Time                `gorm:"not null;index"`
	DaysOverdue int                      `gorm:"not null;default:0"`
	AgingBucket billing.AgingBucket      `gorm:"type:varchar(20);not null;index"`
	Status      billing.ReceivableStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`

	LastPaymentAt *time.Time
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable entity.
func (m *ReceivableModel) ToDomain() *billing.Receivable {
	r := &billing.Receivable{
		InvoiceID:         m.InvoiceID,
		ClientName:        m.ClientName,
		InvoiceAmount:     m.InvoiceAmount,
		PaidAmount:        m.PaidAmount,
		OutstandingAmount: m.OutstandingAmount,
		DueDate:           m.DueDate,
		DaysOverdue:       m.DaysOverdue,
		AgingBucket:       m.AgingBucket,
		Status:            m.Status,
		LastPaymentAt:     m.LastPaymentAt,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Receivable entity.
func (m *ReceivableModel) FromDomain(r *billing.Receivable) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.InvoiceID = r.InvoiceID
	m.ClientName = r.ClientName
	m.InvoiceAmount = r.InvoiceAmount
	m.PaidAmount = r.PaidAmount
	m.OutstandingAmount = r.OutstandingAmount
	m.DueDate = r.DueDate
	m.DaysOverdue = r.DaysOverdue
	m.AgingBucket = r.AgingBucket
	m.Status = r.Status
	m.LastPaymentAt = r.LastPaymentAt
}

// ReceivableModelFromDomain creates a new persistence model from a domain Receivable.
func ReceivableModelFromDomain(r *billing.Receivable) *ReceivableModel {
	m := &ReceivableModel{}
	m.FromDomain(r)
	return m
}
