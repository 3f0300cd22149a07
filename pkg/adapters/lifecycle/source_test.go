package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formpost/pkg/core"
)

func TestSource_Forwards(t *testing.T) {
	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventModify, ID: 42}
	close(in)

	src := NewSource(in)
	require.NoError(t, src.Start(context.Background()))

	select {
	case e, ok := <-src.Events():
		require.True(t, ok)
		assert.Equal(t, core.Event{Type: core.EventModify, ID: 42}.String(), e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output must close when input closes")
	case <-time.After(2 * time.Second):
		t.Fatal("output not closed")
	}
}

func TestSource_StopsOnCancel(t *testing.T) {
	in := make(chan core.Event)
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(in)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("output not closed after cancel")
	}
}
