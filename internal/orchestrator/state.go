package orchestrator

import "sync"

// ProcessState holds process-wide submission flags shared by every window.
// A single mutex guards both flags: the first-submit check and the
// reply-mode read must be atomic with respect to each other, or two windows
// submitting at once could both claim the first submit.
type ProcessState struct {
	mu              sync.Mutex
	firstSubmitDone bool
	replyToAll      bool
}

// NewProcessState returns fresh state: no submit has happened yet and reply
// mode is off.
func NewProcessState() *ProcessState {
	return &ProcessState{}
}

// ConsumeFirstSubmit reports whether this is the first prompt submission of
// the process, and marks it consumed. The first submission always starts a
// new thread regardless of the reply toggle: at startup no service has a
// conversation to reply to.
func (p *ProcessState) ConsumeFirstSubmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.firstSubmitDone {
		return false
	}
	p.firstSubmitDone = true
	return true
}

// Rearm resets the first-submit flag. Called when the user explicitly
// starts a new thread without text, which puts every service back on a
// fresh conversation page.
func (p *ProcessState) Rearm() {
	p.mu.Lock()
	p.firstSubmitDone = false
	p.mu.Unlock()
}

// SetReplyToAll toggles whether submissions continue existing conversations.
func (p *ProcessState) SetReplyToAll(on bool) {
	p.mu.Lock()
	p.replyToAll = on
	p.mu.Unlock()
}

// ReplyToAll returns the current reply toggle.
func (p *ProcessState) ReplyToAll() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.replyToAll
}
