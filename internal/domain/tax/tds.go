package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VendorType classifies the vendor for withholding-rate selection
type VendorType string

const (
	VendorTypeIndividual VendorType = "Individual"
	VendorTypeCompany    VendorType = "Company"
)

// IsValid checks if the vendor type is known
func (v VendorType) IsValid() bool {
	return v == VendorTypeIndividual || v == VendorTypeCompany
}

// NatureOfService maps a vendor engagement to its statutory section
type NatureOfService string

const (
	NatureContractor   NatureOfService = "Contractor"
	NatureProfessional NatureOfService = "Professional Services"
	NatureTechnical    NatureOfService = "Technical Services"
)

// IsValid checks if the nature of service is known
func (n NatureOfService) IsValid() bool {
	switch n {
	case NatureContractor, NatureProfessional, NatureTechnical:
		return true
	}
	return false
}

// Section is the statutory withholding section applied to a payment
type Section string

const (
	SectionContractor   Section = "194C"
	SectionProfessional Section = "194J"
)

// ThresholdStatus records whether the vendor's cumulative yearly payments
// crossed the statutory threshold for the applicable section
type ThresholdStatus string

const (
	ThresholdStatusAbove ThresholdStatus = "Above Threshold"
	ThresholdStatusBelow ThresholdStatus = "Below Threshold"
)

// ComplianceStatus describes the PAN/withholding compliance of a deduction.
// The literal values are part of the external contract.
type ComplianceStatus string

const (
	ComplianceCompliant        ComplianceStatus = "Compliant"
	ComplianceNonCompliant     ComplianceStatus = "Non-Compliant"
	CompliancePendingPAN       ComplianceStatus = "Pending PAN"
	ComplianceDirectorOverride ComplianceStatus = "Director Override"
)

// Statutory rates and thresholds
var (
	rateContractorIndividual = decimal.NewFromInt(1)  // 194C, individual/HUF vendor
	rateContractorCompany    = decimal.NewFromInt(2)  // 194C, company vendor
	rateProfessional         = decimal.NewFromInt(10) // 194J
	ratePANAbsent            = decimal.NewFromInt(20) // flat rate when PAN is missing

	thresholdContractor   = decimal.NewFromInt(100000) // yearly aggregate, 194C
	thresholdProfessional = decimal.NewFromInt(30000)  // yearly aggregate, 194J
)

// Input carries the raw figures for a withholding computation
type Input struct {
	VendorType       VendorType
	NatureOfService  NatureOfService
	PaymentAmount    decimal.Decimal
	PANAvailable     bool
	YearlyCumulative decimal.Decimal // vendor payments in the financial year, before this one
	DirectorOverride bool            // bypasses the PAN-absence penalty
}

// Result is the deterministic outcome of a withholding computation.
// Invariant: NetPayableAmount = PaymentAmount - TDSAmount.
type Result struct {
	Section           Section
	ApplicablePercent decimal.Decimal
	TDSAmount         decimal.Decimal
	NetPayableAmount  decimal.Decimal
	ThresholdStatus   ThresholdStatus
	ComplianceStatus  ComplianceStatus
}

// SectionFor maps a nature of service to its statutory section.
// Professional and technical services share the professional-services section.
func SectionFor(nature NatureOfService) Section {
	if nature == NatureContractor {
		return SectionContractor
	}
	return SectionProfessional
}

// sectionRate returns the normal withholding percentage for the section
func sectionRate(section Section, vendorType VendorType) decimal.Decimal {
	if section == SectionContractor {
		if vendorType == VendorTypeCompany {
			return rateContractorCompany
		}
		return rateContractorIndividual
	}
	return rateProfessional
}

// sectionThreshold returns the yearly statutory threshold for the section
func sectionThreshold(section Section) decimal.Decimal {
	if section == SectionContractor {
		return thresholdContractor
	}
	return thresholdProfessional
}

// Compute runs the TDS derivation. Pure: no I/O, deterministic for a given
// input. The statutory threshold comparison only sets the threshold status;
// the deduction itself is always computed. A director override bypasses the
// PAN-absence penalty and recomputes at the normal section rate.
func Compute(in Input) Result {
	section := SectionFor(in.NatureOfService)

	percent := sectionRate(section, in.VendorType)
	compliance := ComplianceCompliant
	if !in.PANAvailable {
		if in.DirectorOverride {
			compliance = ComplianceDirectorOverride
		} else {
			percent = ratePANAbsent
			compliance = CompliancePendingPAN
		}
	}

	thresholdStatus := ThresholdStatusBelow
	if in.YearlyCumulative.Add(in.PaymentAmount).GreaterThan(sectionThreshold(section)) {
		thresholdStatus = ThresholdStatusAbove
	}

	tds := in.PaymentAmount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)

	return Result{
		Section:           section,
		ApplicablePercent: percent,
		TDSAmount:         tds,
		NetPayableAmount:  in.PaymentAmount.Sub(tds),
		ThresholdStatus:   thresholdStatus,
		ComplianceStatus:  compliance,
	}
}

// FinancialYear returns the Indian financial-year label (April to March)
// for the given time, e.g. "2026-27" for August 2026.
func FinancialYear(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
