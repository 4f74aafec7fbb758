package entity

// NavigationState is the per-session page load state machine, driven
// exclusively by rendering-engine callbacks.
type NavigationState int

const (
	// NavIdle means no navigation is in progress.
	NavIdle NavigationState = iota
	// NavStarting means a navigation has begun.
	NavStarting
	// NavCommitted means content for the new page is being received.
	NavCommitted
	// NavFinished means the page fully loaded.
	NavFinished
	// NavFailed means the navigation errored. Terminal but non-fatal: the
	// session stays alive and may be re-navigated.
	NavFailed
	// NavCrashed means the engine's web process died for this session.
	NavCrashed
)

// String returns a human-readable representation of the navigation state.
func (s NavigationState) String() string {
	switch s {
	case NavIdle:
		return "idle"
	case NavStarting:
		return "starting"
	case NavCommitted:
		return "committed"
	case NavFinished:
		return "finished"
	case NavFailed:
		return "failed"
	case NavCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Settled reports whether the state counts as "finished" for aggregate
// progress purposes. Failed and Crashed settle too: a site that refuses to
// load must not block the rest of the system.
func (s NavigationState) Settled() bool {
	return s == NavFinished || s == NavFailed || s == NavCrashed
}
