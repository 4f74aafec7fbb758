package port

import "context"

// Clipboard abstracts the system clipboard.
type Clipboard interface {
	// Copy places text on the system clipboard.
	Copy(ctx context.Context, text string) error
	// Available reports whether clipboard support exists on this system.
	Available() bool
}
