package flash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campsite-service/internal/session"
)

func TestPushAccumulatesAndDrainClears(t *testing.T) {
	ch := NewChannel(session.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, ch.Push(ctx, "s1", KindError, "first"))
	require.NoError(t, ch.Push(ctx, "s1", KindError, "second"))

	msgs, err := ch.Drain(ctx, "s1", KindError)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, msgs, "every push surfaces, nothing overwritten")

	msgs, err = ch.Drain(ctx, "s1", KindError)
	require.NoError(t, err)
	assert.Empty(t, msgs, "drain clears")
}

func TestKindsAreSeparate(t *testing.T) {
	ch := NewChannel(session.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, ch.Push(ctx, "s1", KindSuccess, "saved"))
	require.NoError(t, ch.Push(ctx, "s1", KindError, "oops"))

	msgs, err := ch.Drain(ctx, "s1", KindSuccess)
	require.NoError(t, err)
	assert.Equal(t, []string{"saved"}, msgs)

	msgs, err = ch.Drain(ctx, "s1", KindError)
	require.NoError(t, err)
	assert.Equal(t, []string{"oops"}, msgs)
}

func TestSessionsAreIsolated(t *testing.T) {
	ch := NewChannel(session.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, ch.Push(ctx, "s1", KindSuccess, "mine"))

	msgs, err := ch.Drain(ctx, "s2", KindSuccess)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
