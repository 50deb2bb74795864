package repository

import (
	"context"
)

// TokenRepository defines the interface for per-owner OAuth token
// persistence used by the calendar capability.
type TokenRepository interface {
	SaveToken(ctx context.Context, waid, tokenJSON string) error
	LoadToken(ctx context.Context, waid string) (string, error)
}
