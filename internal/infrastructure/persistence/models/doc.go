// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - json.go: JSONB column wrappers for cost vectors and append-only logs
// - crm.go: Opportunity and Deal models
// - delivery.go: Program model
// - procurement.go: PurchaseOrder and Payable models
// - tax.go: TaxDeduction model
// - billing.go: Invoice and Receivable models
// - governance.go: Governance record model
// - audit.go: Audit trail and system event log models
package models
