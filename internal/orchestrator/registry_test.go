package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewSessionRegistry()
	surface := &fakeSurface{}

	s, err := r.Create(entity.ServiceDescriptor{ID: "claude", Enabled: true}, surface)
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceID("claude"), s.ID())
	assert.Equal(t, entity.NavIdle, s.State())

	got, ok := r.Get("claude")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = r.Get("gemini")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicateService(t *testing.T) {
	r := NewSessionRegistry()
	_, err := r.Create(entity.ServiceDescriptor{ID: "claude"}, &fakeSurface{})
	require.NoError(t, err)

	_, err = r.Create(entity.ServiceDescriptor{ID: "claude"}, &fakeSurface{})
	assert.Error(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryAllPreservesOrder(t *testing.T) {
	r := NewSessionRegistry()
	for _, id := range []entity.ServiceID{"gemini", "chatgpt", "claude"} {
		_, err := r.Create(entity.ServiceDescriptor{ID: id}, &fakeSurface{})
		require.NoError(t, err)
	}

	var got []entity.ServiceID
	for _, s := range r.All() {
		got = append(got, s.ID())
	}
	assert.Equal(t, []entity.ServiceID{"gemini", "chatgpt", "claude"}, got)
}

func TestRegistryRemove(t *testing.T) {
	r := NewSessionRegistry()
	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini"} {
		_, err := r.Create(entity.ServiceDescriptor{ID: id}, &fakeSurface{})
		require.NoError(t, err)
	}

	r.Remove("claude")
	r.Remove("claude") // second remove is a no-op

	assert.Equal(t, 2, r.Len())
	var got []entity.ServiceID
	for _, s := range r.All() {
		got = append(got, s.ID())
	}
	assert.Equal(t, []entity.ServiceID{"chatgpt", "gemini"}, got)
}
