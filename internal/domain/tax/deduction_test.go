package tax

import (
	"testing"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDeduction(t *testing.T, pan bool) (*TaxDeduction, Input) {
	t.Helper()
	in := Input{
		VendorType:      VendorTypeCompany,
		NatureOfService: NatureProfessional,
		PaymentAmount:   decimal.NewFromInt(250000),
		PANAvailable:    pan,
	}
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleFinance}
	d, err := NewTaxDeduction(uuid.New(), uuid.New(), "Lab Services Pvt Ltd", "2026-27", Compute(in), actor)
	require.NoError(t, err)
	return d, in
}

func TestNewTaxDeduction(t *testing.T) {
	d, _ := createTestDeduction(t, true)

	assert.True(t, d.PaymentAmount.Equal(decimal.NewFromInt(250000)))
	assert.True(t, d.NetPayableAmount.Equal(d.PaymentAmount.Sub(d.TDSAmount)))
	assert.Equal(t, ComplianceCompliant, d.ComplianceStatus)

	events := d.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeTaxDeductionRecorded, events[0].EventType())
}

func TestTaxDeduction_DirectorOverride(t *testing.T) {
	d, in := createTestDeduction(t, false)
	require.Equal(t, CompliancePendingPAN, d.ComplianceStatus)
	require.True(t, d.TDSAmount.Equal(decimal.NewFromInt(50000)), "20%% of 250,000")

	director := shared.Actor{ID: uuid.New(), Role: shared.RoleDirector}
	require.NoError(t, d.ApplyDirectorOverride(in, director))

	assert.Equal(t, ComplianceDirectorOverride, d.ComplianceStatus)
	assert.True(t, d.TDSAmount.Equal(decimal.NewFromInt(25000)), "back to the 10%% section rate")
	assert.True(t, d.NetPayableAmount.Equal(decimal.NewFromInt(225000)))
	require.NotNil(t, d.OverriddenBy)
	assert.Equal(t, director.ID, *d.OverriddenBy)
}

func TestTaxDeduction_DirectorOverrideRoleGated(t *testing.T) {
	d, in := createTestDeduction(t, false)
	finance := shared.Actor{ID: uuid.New(), Role: shared.RoleFinance}

	err := d.ApplyDirectorOverride(in, finance)
	assert.ErrorIs(t, err, shared.ErrRoleNotAllowed)
}

func TestTaxDeduction_OverrideOnlyWhenPendingPAN(t *testing.T) {
	d, in := createTestDeduction(t, true)
	director := shared.Actor{ID: uuid.New(), Role: shared.RoleDirector}

	err := d.ApplyDirectorOverride(in, director)
	assert.Error(t, err)
}
