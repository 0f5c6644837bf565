package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxDeductionModel is the persistence model for the TaxDeduction aggregate root.
type TaxDeductionModel struct {
	AggregateModel
	PayableID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VendorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	VendorName string    `gorm:"type:varchar(200);not null"`

	FinancialYear     string               `gorm:"type:varchar(10);not null;index"`
	Section           tax.Section          `gorm:"type:varchar(10);not null"`
	ApplicablePercent decimal.Decimal      `gorm:"type:decimal(8,4);not null"`
	PaymentAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TDSAmount         decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	NetPayableAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	ThresholdStatus   tax.ThresholdStatus  `gorm:"type:varchar(30);not null"`
	ComplianceStatus  tax.ComplianceStatus `gorm:"type:varchar(30);not null;index"`

	OverriddenBy *uuid.UUID `gorm:"type:uuid"`
	OverriddenAt *time.Time
}

// TableName returns the table name for GORM
func (TaxDeductionModel) TableName() string {
	return "tax_deductions"
}

// ToDomain converts the persistence model to a domain TaxDeduction entity.
func (m *TaxDeductionModel) ToDomain() *tax.TaxDeduction {
	d := &tax.TaxDeduction{
		PayableID:         m.PayableID,
		VendorID:          m.VendorID,
		VendorName:        m.VendorName,
		FinancialYear:     m.FinancialYear,
		Section:           m.Section,
		ApplicablePercent: m.ApplicablePercent,
		PaymentAmount:     m.PaymentAmount,
		TDSAmount:         m.TDSAmount,
		NetPayableAmount:  m.NetPayableAmount,
		ThresholdStatus:   m.ThresholdStatus,
		ComplianceStatus:  m.ComplianceStatus,
		OverriddenBy:      m.OverriddenBy,
		OverriddenAt:      m.OverriddenAt,
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	return d
}

// FromDomain populates the persistence model from a domain TaxDeduction entity.
func (m *TaxDeductionModel) FromDomain(d *tax.TaxDeduction) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.PayableID = d.PayableID
	m.VendorID = d.VendorID
	m.VendorName = d.VendorName
	m.FinancialYear = d.FinancialYear
	m.Section = d.Section
	m.ApplicablePercent = d.ApplicablePercent
	m.PaymentAmount = d.PaymentAmount
	m.TDSAmount = d.TDSAmount
	m.NetPayableAmount = d.NetPayableAmount
	m.ThresholdStatus = d.ThresholdStatus
	m.ComplianceStatus = d.ComplianceStatus
	m.OverriddenBy = d.OverriddenBy
	m.OverriddenAt = d.OverriddenAt
}

// TaxDeductionModelFromDomain creates a new persistence model from a domain TaxDeduction.
func TaxDeductionModelFromDomain(d *tax.TaxDeduction) *TaxDeductionModel {
	m := &TaxDeductionModel{}
	m.FromDomain(d)
	return m
}
