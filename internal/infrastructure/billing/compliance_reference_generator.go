// Package billing provides adapters for invoice compliance integrations.
package billing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	domainbilling "github.com/gkt/backend/internal/domain/billing"
)

// RandomComplianceReferenceGenerator produces opaque compliance references
// locally. The IRN is a 64-character hex digest and the e-way bill number is
// a 12-digit numeric string, matching the shape of the references returned
// by the government portals. Swap this for a portal-backed implementation
// when registration credentials are available.
type RandomComplianceReferenceGenerator struct{}

// NewRandomComplianceReferenceGenerator creates a new generator
func NewRandomComplianceReferenceGenerator() *RandomComplianceReferenceGenerator {
	return &RandomComplianceReferenceGenerator{}
}

// GenerateIRN returns a 64-character lowercase hex reference
func (g *RandomComplianceReferenceGenerator) GenerateIRN(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate IRN: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateEWayBillNumber returns a 12-digit numeric reference.
// The first digit is never zero.
func (g *RandomComplianceReferenceGenerator) GenerateEWayBillNumber(ctx context.Context) (string, error) {
	// 1e11 .. 1e12-1
	min := big.NewInt(100000000000)
	span := big.NewInt(900000000000)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate e-way bill number: %w", err)
	}
	return n.Add(n, min).String(), nil
}

// Ensure RandomComplianceReferenceGenerator implements the interface
var _ domainbilling.ComplianceReferenceGenerator = (*RandomComplianceReferenceGenerator)(nil)
