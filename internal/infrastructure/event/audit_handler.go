package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/ventas/backend/internal/domain/shared"
)

// AuditLogHandler writes every published domain event to the structured log.
// It subscribes as a wildcard handler and serves as the audit trail for sale
// lifecycle transitions, payments and stock movements.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a handler that logs all domain events.
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle logs the event. It never fails.
func (h *AuditLogHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.String("aggregate_type", ev.AggregateType()),
		zap.String("aggregate_id", ev.AggregateID().String()),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events.
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
