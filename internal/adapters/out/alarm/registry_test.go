package alarm

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_StartIsIdempotent(t *testing.T) {
	r := NewRegistry(slog.Default())
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return first }

	r.Start("p1", "o1")
	r.now = func() time.Time { return first.Add(time.Minute) }
	r.Start("p1", "o1")

	at, ok := r.Since("p1", "o1")
	assert.True(t, ok)
	assert.Equal(t, first, at)
	assert.Equal(t, []string{"o1"}, r.Ringing("p1"))
}

func TestRegistry_StopIsIdempotent(t *testing.T) {
	r := NewRegistry(slog.Default())
	r.Start("p1", "o2")
	r.Start("p1", "o1")
	r.Start("p2", "o1")

	r.Stop("p1", "o1")
	r.Stop("p1", "o1")
	r.Stop("p3", "o1")

	assert.Equal(t, []string{"o2"}, r.Ringing("p1"))
	assert.Equal(t, []string{"o1"}, r.Ringing("p2"))
}

func TestRegistry_SilentScopeIsEmpty(t *testing.T) {
	r := NewRegistry(slog.Default())
	r.Start("p1", "o1")
	r.Stop("p1", "o1")

	assert.Empty(t, r.Ringing("p1"))
	_, ok := r.Since("p1", "o1")
	assert.False(t, ok)
}
