package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/governance"
)

// jsonbBytes normalizes the raw driver value of a JSONB column
func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// OpportunityCostsColumn stores the opportunity cost vector as JSONB
type OpportunityCostsColumn crm.OpportunityCosts

// Value implements driver.Valuer for JSONB storage
func (c OpportunityCostsColumn) Value() (driver.Value, error) {
	return json.Marshal(crm.OpportunityCosts(c))
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *OpportunityCostsColumn) Scan(value interface{}) error {
	if value == nil {
		*c = OpportunityCostsColumn{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// DealCostsColumn stores the deal cost vector as JSONB
type DealCostsColumn crm.DealCosts

// Value implements driver.Valuer for JSONB storage
func (c DealCostsColumn) Value() (driver.Value, error) {
	return json.Marshal(crm.DealCosts(c))
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *DealCostsColumn) Scan(value interface{}) error {
	if value == nil {
		*c = DealCostsColumn{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// ProgramCostsColumn stores the program cost vector as JSONB
type ProgramCostsColumn delivery.ProgramCosts

// Value implements driver.Valuer for JSONB storage
func (c ProgramCostsColumn) Value() (driver.Value, error) {
	return json.Marshal(delivery.ProgramCosts(c))
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *ProgramCostsColumn) Scan(value interface{}) error {
	if value == nil {
		*c = ProgramCostsColumn{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// ApprovalHistoryColumn stores the append-only approval history as JSONB
type ApprovalHistoryColumn []governance.ApprovalRecord

// Value implements driver.Valuer for JSONB storage
func (c ApprovalHistoryColumn) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal([]governance.ApprovalRecord(c))
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *ApprovalHistoryColumn) Scan(value interface{}) error {
	if value == nil {
		*c = ApprovalHistoryColumn{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// DuplicateDetectionLogColumn stores the append-only duplicate scan log as JSONB
type DuplicateDetectionLogColumn []governance.DuplicateDetection

// Value implements driver.Valuer for JSONB storage
func (c DuplicateDetectionLogColumn) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal([]governance.DuplicateDetection(c))
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *DuplicateDetectionLogColumn) Scan(value interface{}) error {
	if value == nil {
		*c = DuplicateDetectionLogColumn{}
		return nil
	}
	bytes, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}
