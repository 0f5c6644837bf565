package tax

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxService provides application-level withholding operations
type TaxService struct {
	deductionRepo tax.TaxDeductionRepository
	payableRepo   procurement.PayableRepository
	logger        *zap.Logger
}

// NewTaxService creates a new TaxService
func NewTaxService(
	deductionRepo tax.TaxDeductionRepository,
	payableRepo procurement.PayableRepository,
	logger *zap.Logger,
) *TaxService {
	return &TaxService{
		deductionRepo: deductionRepo,
		payableRepo:   payableRepo,
		logger:        logger,
	}
}

// GetByPayable returns the deduction recorded for a payable
func (s *TaxService) GetByPayable(ctx context.Context, payableID uuid.UUID) (*tax.TaxDeduction, error) {
	return s.deductionRepo.FindByPayableID(ctx, payableID)
}

// ApplyDirectorOverride re-runs the withholding at the normal section
// rate for a vendor whose PAN is pending, and writes the revised net
// amount back to the payable.
func (s *TaxService) ApplyDirectorOverride(ctx context.Context, payableID uuid.UUID, actor shared.Actor) (*tax.TaxDeduction, error) {
	deduction, err := s.deductionRepo.FindByPayableID(ctx, payableID)
	if err != nil {
		return nil, err
	}

	payable, err := s.payableRepo.FindByID(ctx, payableID)
	if err != nil {
		return nil, err
	}

	cumulative, err := s.deductionRepo.SumPaymentsForVendor(ctx, payable.VendorID, deduction.FinancialYear)
	if err != nil {
		return nil, fmt.Errorf("failed to sum vendor payments: %w", err)
	}

	in := tax.Input{
		VendorType:       payable.VendorType,
		NatureOfService:  payable.NatureOfService,
		PaymentAmount:    deduction.PaymentAmount,
		PANAvailable:     payable.HasPAN(),
		YearlyCumulative: cumulative,
		DirectorOverride: true,
	}
	if err := deduction.ApplyDirectorOverride(in, actor); err != nil {
		return nil, err
	}
	if err := s.deductionRepo.Save(ctx, deduction); err != nil {
		return nil, fmt.Errorf("failed to save deduction record: %w", err)
	}

	if err := payable.ApplyWithholding(deduction.NetPayableAmount); err != nil {
		return nil, fmt.Errorf("failed to apply revised withholding: %w", err)
	}
	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}

	s.logger.Info("director override applied to withholding",
		zap.String("payable_id", payableID.String()),
		zap.String("overridden_by", actor.ID.String()),
		zap.String("revised_tds", deduction.TDSAmount.String()),
	)
	return deduction, nil
}
