package delivery

import (
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProgram = "Program"

// Event type constants
const (
	EventTypeProgramCreated         = "ProgramCreated"
	EventTypeProgramClientSignedOff = "ProgramClientSignedOff"
)

// ProgramCreatedEvent is raised when a new program is created
type ProgramCreatedEvent struct {
	shared.BaseDomainEvent
	ProgramID       uuid.UUID       `json:"program_id"`
	Name            string          `json:"name"`
	ClientName      string          `json:"client_name"`
	TotalOrderValue decimal.Decimal `json:"total_order_value"`
}

// NewProgramCreatedEvent creates a new ProgramCreatedEvent
func NewProgramCreatedEvent(p *Program, actor shared.Actor) *ProgramCreatedEvent {
	return &ProgramCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProgramCreated, AggregateTypeProgram, p.ID, actor),
		ProgramID:       p.ID,
		Name:            p.Name,
		ClientName:      p.ClientName,
		TotalOrderValue: p.TotalOrderValue,
	}
}

// EventType returns the event type name
func (e *ProgramCreatedEvent) EventType() string {
	return EventTypeProgramCreated
}

// ProgramClientSignedOffEvent is raised when the client signs off a program.
// The cascade orchestrator consumes it to mark the program invoice-eligible.
type ProgramClientSignedOffEvent struct {
	shared.BaseDomainEvent
	ProgramID  uuid.UUID `json:"program_id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
}

// NewProgramClientSignedOffEvent creates a new ProgramClientSignedOffEvent
func NewProgramClientSignedOffEvent(p *Program, actor shared.Actor) *ProgramClientSignedOffEvent {
	return &ProgramClientSignedOffEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProgramClientSignedOff, AggregateTypeProgram, p.ID, actor),
		ProgramID:       p.ID,
		Name:            p.Name,
		ClientName:      p.ClientName,
	}
}

// EventType returns the event type name
func (e *ProgramClientSignedOffEvent) EventType() string {
	return EventTypeProgramClientSignedOff
}
