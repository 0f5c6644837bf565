package billing

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomComplianceReferenceGenerator_GenerateIRN(t *testing.T) {
	gen := NewRandomComplianceReferenceGenerator()

	irn, err := gen.GenerateIRN(context.Background())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), irn)
}

func TestRandomComplianceReferenceGenerator_GenerateIRN_Unique(t *testing.T) {
	gen := NewRandomComplianceReferenceGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		irn, err := gen.GenerateIRN(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[irn], "IRN collision")
		seen[irn] = true
	}
}

func TestRandomComplianceReferenceGenerator_GenerateEWayBillNumber(t *testing.T) {
	gen := NewRandomComplianceReferenceGenerator()

	for i := 0; i < 50; i++ {
		eway, err := gen.GenerateEWayBillNumber(context.Background())

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{11}$`), eway)
	}
}
