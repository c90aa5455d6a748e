package session

import "context"

const returnToKey = "return_to"

// Tracker preserves the URL an unauthenticated request was aiming at so a
// successful login can resume there. URLs on the deny list are never
// recorded; tracking the login page itself would loop the redirect.
type Tracker struct {
	store  Store
	denied map[string]struct{}
}

func NewTracker(store Store, denied ...string) *Tracker {
	d := make(map[string]struct{}, len(denied))
	for _, u := range denied {
		d[u] = struct{}{}
	}
	return &Tracker{store: store, denied: d}
}

// Track records url as the session's pending redirect target, overwriting
// any earlier one.
func (t *Tracker) Track(ctx context.Context, sid, url string) error {
	if url == "" {
		return nil
	}
	if _, deny := t.denied[url]; deny {
		return nil
	}
	return t.store.Set(ctx, sid, returnToKey, url)
}

// Consume returns the recorded target and clears it. Read happens before
// clear: a failure between the two degrades to a repeated redirect target,
// never to losing the read. With nothing recorded the fallback is returned.
func (t *Tracker) Consume(ctx context.Context, sid, fallback string) (string, error) {
	url, err := t.store.Get(ctx, sid, returnToKey)
	if err == ErrNoValue {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	if err := t.store.Clear(ctx, sid, returnToKey); err != nil {
		return url, err
	}
	if url == "" {
		return fallback, nil
	}
	return url, nil
}
