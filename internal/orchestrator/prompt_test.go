package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port/mocks"
	"github.com/mattmireles/Hyperchat-sub000/internal/bus"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

func TestFirstSubmitAlwaysStartsNewThreads(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()

	// Reply mode is on, but nothing has been submitted yet: there is no
	// conversation to reply to, so the first submit starts new threads.
	r.state.SetReplyToAll(true)

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "hello world"))

	assert.Contains(t, r.surface("chatgpt").lastLoad(), "q=hello+world")
	assert.Contains(t, r.surface("perplexity").lastLoad(), "q=hello+world")
	assert.Equal(t, "https://claude.ai/new", r.surface("claude").lastLoad())
	assert.Equal(t, "https://gemini.google.com/app", r.surface("gemini").lastLoad())

	// Injection services submit only after the page settles plus the
	// composer-mount delay.
	assert.Zero(t, r.surface("claude").scriptCount())
	r.surface("claude").completeLoad()
	assert.Zero(t, r.surface("claude").scriptCount())
	r.dispatch.advance(testTiming.InjectionDelay)
	assert.Equal(t, 1, r.surface("claude").scriptCount())

	assert.Equal(t, []string{"hello world"}, r.clip.copied)
	require.Equal(t, 1, r.repo.count())
	assert.Equal(t, entity.PromptNewThread, r.repo.last().Mode)
}

func TestSecondSubmitRepliesInPlace(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()
	r.state.SetReplyToAll(true)

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "first"))
	r.surface("claude").completeLoad()
	r.surface("gemini").completeLoad()
	r.dispatch.advance(testTiming.InjectionDelay)

	loadsBefore := map[entity.ServiceID]int{}
	scriptsBefore := map[entity.ServiceID]int{}
	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini", "perplexity"} {
		loadsBefore[id] = r.surface(id).loadCount()
		scriptsBefore[id] = r.surface(id).scriptCount()
	}

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "follow-up"))

	// Reply-to-all injects into the existing pages after the readiness
	// delay; no navigation at all.
	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini", "perplexity"} {
		assert.Equal(t, scriptsBefore[id], r.surface(id).scriptCount(), "%s must wait out the readiness delay", id)
	}
	r.dispatch.advance(testTiming.InjectionDelay)
	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini", "perplexity"} {
		assert.Equal(t, loadsBefore[id], r.surface(id).loadCount(), "%s must not navigate", id)
		assert.Equal(t, scriptsBefore[id]+1, r.surface(id).scriptCount(), "%s must receive the reply script", id)
	}
	assert.Equal(t, entity.PromptReplyToAll, r.repo.last().Mode)
}

func TestFirstSubmitFlipsReplyToggleOn(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()

	var announced []bool
	r.events.Subscribe(bus.TopicReplyModeChanged, func(payload any) {
		ev, ok := payload.(bus.ReplyModeEvent)
		require.True(t, ok)
		announced = append(announced, ev.ReplyToAll)
	})

	// Toggle starts off, but the first submit leaves live conversations
	// behind, so it persists reply mode and tells the chrome.
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "first"))
	assert.True(t, r.state.ReplyToAll())
	assert.Equal(t, []bool{true}, announced)

	// The second submit therefore replies in place instead of navigating.
	loads := r.surface("chatgpt").loadCount()
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "second"))
	r.dispatch.advance(testTiming.InjectionDelay)
	assert.Equal(t, loads, r.surface("chatgpt").loadCount())
	assert.Equal(t, entity.PromptReplyToAll, r.repo.last().Mode)
}

func TestReplyToggleTurnedOffKeepsStartingThreads(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "first"))
	r.state.SetReplyToAll(false)

	chatLoads := r.surface("chatgpt").loadCount()
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "second"))
	assert.Equal(t, chatLoads+1, r.surface("chatgpt").loadCount())
	assert.Contains(t, r.surface("chatgpt").lastLoad(), "q=second")
}

func TestStartNewThreadWithoutTextRearms(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()
	r.state.SetReplyToAll(true)

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "first"))
	r.surface("chatgpt").completeLoad()
	r.surface("perplexity").completeLoad()
	r.surface("claude").completeLoad()
	r.surface("gemini").completeLoad()
	r.dispatch.advance(testTiming.InjectionDelay)

	require.NoError(t, r.orch.StartNewThread(r.ctx, ""))

	// Fresh-conversation loads run through the serialized queue.
	assert.Equal(t, "https://chatgpt.com", r.surface("chatgpt").lastLoad())
	r.surface("chatgpt").completeLoad()
	r.dispatch.advance(testTiming.SchedulerStep)
	assert.Equal(t, "https://claude.ai/new", r.surface("claude").lastLoad())
	r.surface("claude").completeLoad()
	r.dispatch.advance(testTiming.SchedulerStep)
	r.surface("gemini").completeLoad()
	r.dispatch.advance(testTiming.SchedulerStep)
	r.surface("perplexity").completeLoad()
	r.dispatch.advance(testTiming.SchedulerStep)

	// The flag re-armed: despite reply mode, the next submit starts new
	// threads again.
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "again"))
	assert.Contains(t, r.surface("chatgpt").lastLoad(), "q=again")
}

func TestStartNewThreadWithTextDelivers(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()
	r.state.SetReplyToAll(true)

	require.NoError(t, r.orch.StartNewThread(r.ctx, "kickoff"))
	assert.Contains(t, r.surface("chatgpt").lastLoad(), "q=kickoff")

	// The embedded text consumed the first submit; the next one replies.
	scriptsBefore := r.surface("claude").scriptCount()
	r.surface("claude").completeLoad()
	r.dispatch.advance(testTiming.InjectionDelay)
	assert.Equal(t, scriptsBefore+1, r.surface("claude").scriptCount())

	loads := r.surface("chatgpt").loadCount()
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "and then"))
	assert.Equal(t, loads, r.surface("chatgpt").loadCount())
}

func TestEmptyPromptIgnored(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()

	loads := r.surface("chatgpt").loadCount()
	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "   \n\t"))

	assert.Equal(t, loads, r.surface("chatgpt").loadCount())
	assert.Zero(t, r.repo.count())
	assert.Empty(t, r.clip.copied)
}

func TestRefocusRequestedAfterSubmit(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()

	refocused := 0
	r.events.Subscribe(bus.TopicInputRefocus, func(any) { refocused++ })

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "hi"))
	assert.Zero(t, refocused)
	r.dispatch.advance(testTiming.RefocusDelay)
	assert.Equal(t, 1, refocused)
}

func TestClipboardReceivesTrimmedPromptText(t *testing.T) {
	ctrl := gomock.NewController(t)
	clip := mocks.NewMockClipboard(ctrl)
	clip.EXPECT().Available().Return(true)
	clip.EXPECT().Copy(gomock.Any(), "padded prompt").Return(nil)

	catalog, err := delivery.DefaultCatalog()
	require.NoError(t, err)

	ctx := context.Background()
	orch, err := New(ctx, Options{
		WindowID:   "main",
		Services:   delivery.DefaultDescriptors(),
		Catalog:    catalog,
		Factory:    &fakeFactory{},
		Dispatcher: &manualDispatcher{},
		Clipboard:  clip,
		Events:     bus.New(),
		State:      NewProcessState(),
		Timing:     testTiming,
	})
	require.NoError(t, err)
	t.Cleanup(func() { orch.Close(ctx) })

	require.NoError(t, orch.ExecuteSharedPrompt(ctx, "  padded prompt  \n"))
}

func TestClipboardFailureDoesNotBlockDelivery(t *testing.T) {
	r := newRig(t, nil)
	r.completeInitialPass()
	r.clip.err = assert.AnError

	require.NoError(t, r.orch.ExecuteSharedPrompt(r.ctx, "still delivered"))
	assert.Contains(t, r.surface("chatgpt").lastLoad(), "q=still+delivered")
}
