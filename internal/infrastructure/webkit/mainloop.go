// Package webkit hosts the GTK/WebKitGTK rendering backend: surface
// creation, the main-loop dispatcher, window chrome, and snapshot capture.
// Everything here runs on the GTK main thread unless noted otherwise.
package webkit

import (
	"runtime"
	"sync"
)

var initOnce sync.Once

// InitMainThread locks the calling goroutine to its OS thread. GTK requires
// every widget operation to happen on the thread that initialized it, so
// this must run before the first GTK call.
func InitMainThread() {
	initOnce.Do(runtime.LockOSThread)
}
