package crm

import (
	"time"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOpportunityRequest carries the inputs for opening an opportunity
type CreateOpportunityRequest struct {
	Name            string          `json:"name" binding:"required"`
	ClientName      string          `json:"client_name" binding:"required"`
	TotalOrderValue decimal.Decimal `json:"total_order_value" binding:"required"`
}

// UpdateOpportunityCostsRequest replaces the opportunity cost vector
type UpdateOpportunityCostsRequest struct {
	TotalOrderValue *decimal.Decimal     `json:"total_order_value,omitempty"`
	Costs           crm.OpportunityCosts `json:"costs"`
}

// MarkLostRequest carries the reason an opportunity was lost
type MarkLostRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// OpportunityResponse is the read model for an opportunity
type OpportunityResponse struct {
	ID              uuid.UUID       `json:"id"`
	AdhocCode       string          `json:"adhoc_code"`
	Name            string          `json:"name"`
	ClientName      string          `json:"client_name"`
	TotalOrderValue decimal.Decimal `json:"total_order_value"`
	TotalCosts      decimal.Decimal `json:"total_costs"`
	FinalGP         decimal.Decimal `json:"final_gp"`
	GPPercent       decimal.Decimal `json:"gp_percent"`
	Status          string          `json:"status"`
	DealID          *uuid.UUID      `json:"deal_id,omitempty"`
	LostReason      string          `json:"lost_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToOpportunityResponse maps an opportunity aggregate to its read model
func ToOpportunityResponse(o *crm.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:              o.ID,
		AdhocCode:       o.AdhocCode,
		Name:            o.Name,
		ClientName:      o.ClientName,
		TotalOrderValue: o.TotalOrderValue,
		TotalCosts:      o.TotalCosts,
		FinalGP:         o.FinalGP,
		GPPercent:       o.GPPercent,
		Status:          o.Status.String(),
		DealID:          o.DealID,
		LostReason:      o.LostReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// CreateDealRequest carries the inputs for creating a deal directly
type CreateDealRequest struct {
	ClientName      string          `json:"client_name" binding:"required"`
	Description     string          `json:"description,omitempty"`
	TotalOrderValue decimal.Decimal `json:"total_order_value" binding:"required"`
	Costs           crm.DealCosts   `json:"costs"`
}

// UpdateDealRequest replaces the commercial inputs of a deal
type UpdateDealRequest struct {
	TotalOrderValue decimal.Decimal `json:"total_order_value" binding:"required"`
	Costs           crm.DealCosts   `json:"costs"`
}

// RejectDealRequest carries the reason a deal was rejected
type RejectDealRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DealResponse is the read model for a deal
type DealResponse struct {
	ID                       uuid.UUID       `json:"id"`
	DealNumber               string          `json:"deal_number"`
	OpportunityID            *uuid.UUID      `json:"opportunity_id,omitempty"`
	ClientName               string          `json:"client_name"`
	TotalOrderValue          decimal.Decimal `json:"total_order_value"`
	TotalCost                decimal.Decimal `json:"total_cost"`
	ContributionMargin       decimal.Decimal `json:"contribution_margin"`
	BreakEvenValue           decimal.Decimal `json:"break_even_value"`
	GrossMarginPercent       decimal.Decimal `json:"gross_margin_percent"`
	MarginThresholdStatus    string          `json:"margin_threshold_status"`
	ApprovalStatus           string          `json:"approval_status"`
	DirectorApprovalRequired bool            `json:"director_approval_required"`
	RejectionReason          string          `json:"rejection_reason,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// ToDealResponse maps a deal aggregate to its read model
func ToDealResponse(d *crm.Deal) DealResponse {
	return DealResponse{
		ID:                       d.ID,
		DealNumber:               d.DealNumber,
		OpportunityID:            d.OpportunityID,
		ClientName:               d.ClientName,
		TotalOrderValue:          d.TotalOrderValue,
		TotalCost:                d.TotalCost,
		ContributionMargin:       d.ContributionMargin,
		BreakEvenValue:           d.BreakEvenValue,
		GrossMarginPercent:       d.GrossMarginPercent,
		MarginThresholdStatus:    d.MarginThresholdStatus.String(),
		ApprovalStatus:           d.ApprovalStatus.String(),
		DirectorApprovalRequired: d.DirectorApprovalRequired,
		RejectionReason:          d.RejectionReason,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}
