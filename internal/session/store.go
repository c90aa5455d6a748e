package session

import (
	"context"
	"errors"
)

// ErrNoValue is returned when a session key has no recorded value.
var ErrNoValue = errors.New("session: no value")

// Store is per-session ephemeral state keyed by session id. Values are
// opaque strings; callers that need structure encode it themselves.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, error)
	Set(ctx context.Context, sid, key, value string) error
	Clear(ctx context.Context, sid, key string) error
}
