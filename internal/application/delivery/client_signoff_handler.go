package delivery

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientSignOffHandler handles ProgramClientSignedOffEvent and marks the
// program eligible for invoicing. Invoice creation itself stays an
// explicit operator action; this cascade only opens the gate.
type ClientSignOffHandler struct {
	programRepo delivery.ProgramRepository
	logger      *zap.Logger
}

// NewClientSignOffHandler creates a new handler for client sign-off events
func NewClientSignOffHandler(programRepo delivery.ProgramRepository, logger *zap.Logger) *ClientSignOffHandler {
	return &ClientSignOffHandler{
		programRepo: programRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ClientSignOffHandler) EventTypes() []string {
	return []string{delivery.EventTypeProgramClientSignedOff}
}

// Handle marks the signed-off program as invoice eligible
func (h *ClientSignOffHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	signOffEvent, ok := event.(*delivery.ProgramClientSignedOffEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			delivery.EventTypeProgramClientSignedOff, event.EventType())
	}

	program, err := h.programRepo.FindByID(ctx, signOffEvent.ProgramID)
	if err != nil {
		h.logger.Error("failed to load program for invoice eligibility",
			zap.String("program_id", signOffEvent.ProgramID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to load program: %w", err)
	}

	// The trigger may fire more than once; the flag flips at most once
	if !program.MarkInvoiceEligible() {
		h.logger.Debug("program already invoice eligible, skipping",
			zap.String("program_id", program.ID.String()),
		)
		return nil
	}

	if err := h.programRepo.Save(ctx, program); err != nil {
		return fmt.Errorf("failed to save program: %w", err)
	}

	h.logger.Info("program marked invoice eligible",
		zap.String("program_id", program.ID.String()),
		zap.String("client_name", program.ClientName),
	)
	return nil
}

// Ensure ClientSignOffHandler implements shared.EventHandler
var _ shared.EventHandler = (*ClientSignOffHandler)(nil)
