package handler

import (
	"time"

	taxapp "github.com/gkt/backend/internal/application/tax"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxDeductionHandler exposes the withholding records derived for payables
type TaxDeductionHandler struct {
	BaseHandler
	taxService *taxapp.TaxService
}

// NewTaxDeductionHandler creates a new TaxDeductionHandler
func NewTaxDeductionHandler(taxService *taxapp.TaxService) *TaxDeductionHandler {
	return &TaxDeductionHandler{
		taxService: taxService,
	}
}

// TaxDeductionResponse represents a withholding record in API responses
type TaxDeductionResponse struct {
	ID                uuid.UUID       `json:"id"`
	PayableID         uuid.UUID       `json:"payable_id"`
	VendorID          uuid.UUID       `json:"vendor_id"`
	VendorName        string          `json:"vendor_name"`
	FinancialYear     string          `json:"financial_year"`
	Section           string          `json:"section"`
	ApplicablePercent decimal.Decimal `json:"applicable_percent"`
	PaymentAmount     decimal.Decimal `json:"payment_amount"`
	TDSAmount         decimal.Decimal `json:"tds_amount"`
	NetPayableAmount  decimal.Decimal `json:"net_payable_amount"`
	ThresholdStatus   string          `json:"threshold_status"`
	ComplianceStatus  string          `json:"compliance_status"`
	OverriddenAt      *time.Time      `json:"overridden_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toTaxDeductionResponse(d *tax.TaxDeduction) TaxDeductionResponse {
	return TaxDeductionResponse{
		ID:                d.ID,
		PayableID:         d.PayableID,
		VendorID:          d.VendorID,
		VendorName:        d.VendorName,
		FinancialYear:     d.FinancialYear,
		Section:           string(d.Section),
		ApplicablePercent: d.ApplicablePercent,
		PaymentAmount:     d.PaymentAmount,
		TDSAmount:         d.TDSAmount,
		NetPayableAmount:  d.NetPayableAmount,
		ThresholdStatus:   string(d.ThresholdStatus),
		ComplianceStatus:  string(d.ComplianceStatus),
		OverriddenAt:      d.OverriddenAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// GetByPayable godoc
// @ID           getTaxDeductionByPayable
// @Summary      Get withholding record
// @Description  Get the TDS record derived for a payable
// @Tags         tax
// @Produce      json
// @Param        id path string true "Payable ID"
// @Success      200 {object} APIResponse[TaxDeductionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/tax-deduction [get]
func (h *TaxDeductionHandler) GetByPayable(c *gin.Context) {
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	deduction, err := h.taxService.GetByPayable(c.Request.Context(), payableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTaxDeductionResponse(deduction))
}

// ApplyDirectorOverride godoc
// @ID           applyTaxDirectorOverride
// @Summary      Apply director override
// @Description  Recompute withholding at the normal section rate under director authority
// @Tags         tax
// @Produce      json
// @Param        id path string true "Payable ID"
// @Success      200 {object} APIResponse[TaxDeductionResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/tax-deduction/override [post]
func (h *TaxDeductionHandler) ApplyDirectorOverride(c *gin.Context) {
	payableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	deduction, err := h.taxService.ApplyDirectorOverride(c.Request.Context(), payableID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTaxDeductionResponse(deduction))
}
