package repository

import (
	"context"
)

// SessionTurn is one recorded exchange turn for an owner's session.
type SessionTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionRepository defines the interface for per-owner conversation
// state. Load at request start, append at request end; nothing here is
// process-global.
type SessionRepository interface {
	Load(ctx context.Context, waid string) ([]SessionTurn, error)
	Append(ctx context.Context, waid string, turns ...SessionTurn) error
	Clear(ctx context.Context, waid string) error
}
