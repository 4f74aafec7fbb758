package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

func newTeardownFixture(t *testing.T) (*SessionRegistry, *TeardownSequencer, *Session, *fakeSurface) {
	t.Helper()
	catalog, err := delivery.DefaultCatalog()
	require.NoError(t, err)
	profile, _ := catalog.Lookup("claude")

	registry := NewSessionRegistry()
	surface := &fakeSurface{}
	session, err := registry.Create(entity.ServiceDescriptor{ID: "claude", Enabled: true}, surface)
	require.NoError(t, err)

	tracker := NewNavigationTracker(session, profile, &manualDispatcher{},
		2*time.Second, zerolog.Nop(), nil, nil)
	tracker.Attach()

	return registry, NewTeardownSequencer(registry, zerolog.Nop()), session, surface
}

func indexOf(log []string, call string) int {
	for i, c := range log {
		if c == call {
			return i
		}
	}
	return -1
}

func TestTeardownRunsStepsInOrder(t *testing.T) {
	registry, seq, session, surface := newTeardownFixture(t)

	seq.TeardownSession(context.Background(), session)

	log := surface.callLog()
	stop := indexOf(log, "StopLoading")
	clearCb := indexOf(log, "SetCallbacks(nil)")
	detach := indexOf(log, "DetachFromParent")
	destroy := indexOf(log, "Destroy")

	require.NotEqual(t, -1, stop)
	require.NotEqual(t, -1, clearCb)
	require.NotEqual(t, -1, detach)
	require.NotEqual(t, -1, destroy)
	assert.Less(t, stop, clearCb, "navigation must stop before callbacks clear")
	assert.Less(t, clearCb, detach, "callbacks must clear before detach")
	assert.Less(t, detach, destroy, "detach must precede destroy")

	assert.Zero(t, registry.Len())
	assert.True(t, surface.IsDestroyed())
}

func TestTeardownIsIdempotent(t *testing.T) {
	_, seq, session, surface := newTeardownFixture(t)
	ctx := context.Background()

	seq.TeardownSession(ctx, session)
	callsAfterFirst := len(surface.callLog())

	seq.TeardownSession(ctx, session)
	assert.Equal(t, callsAfterFirst, len(surface.callLog()), "second teardown must be a no-op")
}

func TestTeardownClearsPendingHooks(t *testing.T) {
	_, seq, session, surface := newTeardownFixture(t)

	session.setAfterSettled(func() { t.Fatal("hook must not survive teardown") })
	seq.TeardownSession(context.Background(), session)

	// Late engine events land on cleared callbacks and armed hooks are gone.
	surface.fireFinished()
	assert.Nil(t, session.takeAfterSettled())
}

func TestTeardownAll(t *testing.T) {
	catalog, err := delivery.DefaultCatalog()
	require.NoError(t, err)

	registry := NewSessionRegistry()
	var surfaces []*fakeSurface
	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini"} {
		surface := &fakeSurface{}
		session, err := registry.Create(entity.ServiceDescriptor{ID: id, Enabled: true}, surface)
		require.NoError(t, err)
		profile, _ := catalog.Lookup(id)
		NewNavigationTracker(session, profile, &manualDispatcher{},
			2*time.Second, zerolog.Nop(), nil, nil).Attach()
		surfaces = append(surfaces, surface)
	}

	NewTeardownSequencer(registry, zerolog.Nop()).TeardownAll(context.Background())

	assert.Zero(t, registry.Len())
	for _, s := range surfaces {
		assert.True(t, s.IsDestroyed())
	}
}
