package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker() *Tracker {
	return NewTracker(NewMemoryStore(), "/login", "/", "/favicon.ico", "/healthz")
}

func TestTrackAndConsume(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Track(ctx, "s1", "/campgrounds/42/edit"))

	url, err := tr.Consume(ctx, "s1", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds/42/edit", url)

	// consumed exactly once; the second read falls back
	url, err = tr.Consume(ctx, "s1", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds", url)
}

func TestTrackOverwritesPriorTarget(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Track(ctx, "s1", "/campgrounds/1/edit"))
	require.NoError(t, tr.Track(ctx, "s1", "/campgrounds/2/edit"))

	url, err := tr.Consume(ctx, "s1", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds/2/edit", url)
}

func TestTrackIgnoresDeniedURLs(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	for _, u := range []string{"/login", "/", "/favicon.ico", "/healthz", ""} {
		require.NoError(t, tr.Track(ctx, "s1", u))
	}

	url, err := tr.Consume(ctx, "s1", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds", url, "denied urls must never become redirect targets")
}

func TestTrackerSessionsAreIndependent(t *testing.T) {
	tr := newTestTracker()
	ctx := context.Background()

	require.NoError(t, tr.Track(ctx, "s1", "/campgrounds/1"))
	require.NoError(t, tr.Track(ctx, "s2", "/campgrounds/2"))

	url, err := tr.Consume(ctx, "s1", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds/1", url)

	url, err = tr.Consume(ctx, "s2", "/campgrounds")
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds/2", url)
}
