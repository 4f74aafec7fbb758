package entity

import "time"

// PromptMode selects how a submitted prompt relates to existing
// conversations.
type PromptMode int

const (
	// PromptNewThread starts a fresh conversation on every service.
	PromptNewThread PromptMode = iota
	// PromptReplyToAll continues the existing conversation on every service.
	PromptReplyToAll
)

// String returns a human-readable representation of the prompt mode.
func (m PromptMode) String() string {
	switch m {
	case PromptNewThread:
		return "new_thread"
	case PromptReplyToAll:
		return "reply_to_all"
	default:
		return "unknown"
	}
}

// PromptRecord is one shared-prompt submission, persisted for the history
// browser.
type PromptRecord struct {
	ID          int64
	Text        string
	Mode        PromptMode
	SubmittedAt time.Time
}
