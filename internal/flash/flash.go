// Package flash carries one-shot notifications across a redirect. Messages
// are pushed during a mutating request and drained exactly once when the
// next page renders.
package flash

import (
	"context"
	"encoding/json"

	"campsite-service/internal/session"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Channel struct {
	store session.Store
}

func NewChannel(store session.Store) *Channel {
	return &Channel{store: store}
}

func flashKey(kind Kind) string {
	return "flash:" + string(kind)
}

// Push appends message to the session's list for kind. Repeated pushes
// accumulate; nothing is overwritten.
func (c *Channel) Push(ctx context.Context, sid string, kind Kind, message string) error {
	msgs, err := c.peek(ctx, sid, kind)
	if err != nil {
		return err
	}
	msgs = append(msgs, message)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, sid, flashKey(kind), string(raw))
}

// Drain returns every pending message for kind and clears them. The read
// happens before the clear so a failure cannot discard unread messages.
func (c *Channel) Drain(ctx context.Context, sid string, kind Kind) ([]string, error) {
	msgs, err := c.peek(ctx, sid, kind)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	if err := c.store.Clear(ctx, sid, flashKey(kind)); err != nil {
		return msgs, err
	}
	return msgs, nil
}

func (c *Channel) peek(ctx context.Context, sid string, kind Kind) ([]string, error) {
	raw, err := c.store.Get(ctx, sid, flashKey(kind))
	if err == session.ErrNoValue {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var msgs []string
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
