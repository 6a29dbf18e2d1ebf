package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLogger subscribes a zap-backed handler for every audit event
// type so state changes leave a structured trail.
func RegisterAuditLogger(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		fields := make([]zap.Field, 0, len(event.Fields)+1)
		fields = append(fields, zap.Time("occurred_at", event.OccurredAt))
		for key, value := range event.Fields {
			fields = append(fields, zap.Any(key, value))
		}
		logger.Info(string(event.Type), fields...)
		return nil
	}

	for _, eventType := range []EventType{EventUserRegistered, EventClothCreated, EventClothDeleted} {
		dispatcher.Subscribe(eventType, handler)
	}
}
