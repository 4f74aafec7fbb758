package entity

import "time"

// HibernationSnapshot is the captured visual state of a window at the moment
// it was hibernated, plus the paused flag per session. The bitmap is an
// encoded image supplied by the window's snapshot collaborator; it may be
// empty when the platform cannot capture one.
type HibernationSnapshot struct {
	WindowID   WindowID
	Bitmap     []byte
	CapturedAt time.Time
	Paused     map[ServiceID]bool
}
