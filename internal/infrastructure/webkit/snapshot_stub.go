//go:build !webkit_cgo

package webkit

import (
	"context"
	"fmt"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
)

// captureSnapshot needs the native snapshot API; without the webkit_cgo
// build tag hibernation simply proceeds without a placeholder bitmap.
func captureSnapshot(_ context.Context, _ *webkit.WebView) ([]byte, error) {
	return nil, fmt.Errorf("snapshot: capture unavailable in this build")
}
