package persistence

import (
	"fmt"
	"strings"

	"github.com/gkt/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// OpportunitySortFields contains allowed sort fields for opportunities
var OpportunitySortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"adhoc_code":        true,
	"client_name":       true,
	"total_order_value": true,
	"final_gp":          true,
	"gp_percent":        true,
	"status":            true,
}

// DealSortFields contains allowed sort fields for deals
var DealSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"deal_number":          true,
	"client_name":          true,
	"total_order_value":    true,
	"contribution_margin":  true,
	"gross_margin_percent": true,
	"approval_status":      true,
}

// ProgramSortFields contains allowed sort fields for programs
var ProgramSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"client_name": true,
	"status":      true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"po_number":     true,
	"vendor_name":   true,
	"approved_cost": true,
	"status":        true,
}

// PayableSortFields contains allowed sort fields for payables
var PayableSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"vendor_name":        true,
	"outstanding_amount": true,
	"status":             true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"client_name":    true,
	"invoice_amount": true,
	"due_date":       true,
	"status":         true,
}

// ReceivableSortFields contains allowed sort fields for receivables
var ReceivableSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"client_name":        true,
	"outstanding_amount": true,
	"due_date":           true,
	"days_overdue":       true,
	"status":             true,
}

// GovernanceSortFields contains allowed sort fields for governance records
var GovernanceSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"risk_level":        true,
	"last_evaluated_at": true,
}

// applyListOptions applies the whitelist-validated ordering and pagination
// of a shared.Filter to a list query
func applyListOptions(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(fmt.Sprintf("%s %s", field, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
