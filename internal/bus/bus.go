// Package bus provides a small in-process publish/subscribe bus used to
// decouple the orchestration core from UI chrome and persistence. Delivery
// is synchronous and in subscription order.
package bus

import (
	"sync"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// Topic identifies one event stream on the bus.
type Topic string

const (
	// TopicServicesUpdated fires when the enabled-services configuration
	// changed and sessions must be rebuilt.
	TopicServicesUpdated Topic = "services.updated"
	// TopicWindowFocused fires when a window gained OS focus.
	TopicWindowFocused Topic = "window.focused"
	// TopicSessionsReady fires once, the first time every session of a
	// window has settled its initial load.
	TopicSessionsReady Topic = "sessions.ready"
	// TopicInputRefocus asks the window chrome to return keyboard focus to
	// the shared prompt input.
	TopicInputRefocus Topic = "input.refocus"
	// TopicSessionLoading fires on every per-session loading transition.
	TopicSessionLoading Topic = "session.loading"
	// TopicReplyModeChanged fires when the persisted reply-to-all toggle is
	// changed outside the window chrome, so the chrome can mirror it.
	TopicReplyModeChanged Topic = "replymode.changed"
	// TopicWindowHibernated fires after a window's sessions were paused and
	// hidden. The payload carries the bitmap captured for the overlay.
	TopicWindowHibernated Topic = "window.hibernated"
	// TopicWindowRestored fires after a hibernated window woke up.
	TopicWindowRestored Topic = "window.restored"
)

// SessionLoadingEvent is the payload for TopicSessionLoading.
type SessionLoadingEvent struct {
	ServiceID entity.ServiceID
	Loading   bool
}

// WindowFocusEvent is the payload for TopicWindowFocused.
type WindowFocusEvent struct {
	WindowID entity.WindowID
}

// ReplyModeEvent is the payload for TopicReplyModeChanged.
type ReplyModeEvent struct {
	ReplyToAll bool
}

// WindowHibernationEvent is the payload for TopicWindowHibernated and
// TopicWindowRestored. Bitmap is empty when capture failed or was
// unavailable, and always empty on restore.
type WindowHibernationEvent struct {
	WindowID entity.WindowID
	Bitmap   []byte
}

// Handler receives published events. Payload type depends on the topic.
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous in-process event bus. Safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers handler for topic and returns a cancel function.
// Cancelling is idempotent.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[topic]
			for i, s := range list {
				if s.id == id {
					b.subs[topic] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers payload to every subscriber of topic, synchronously, in
// subscription order. Handlers registered during delivery do not receive
// the in-flight event.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	list := make([]subscription, len(b.subs[topic]))
	copy(list, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range list {
		s.handler(payload)
	}
}
