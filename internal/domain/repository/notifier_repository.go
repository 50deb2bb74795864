package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// NotifierRepository defines the interface for outbound messaging.
// Delivery failures are the collaborator's problem; callers treat sends
// as fire-and-forget.
type NotifierRepository interface {
	SendPayload(ctx context.Context, payload *entity.Payload) error
}
