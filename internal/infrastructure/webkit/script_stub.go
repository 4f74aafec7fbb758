//go:build !webkit_cgo

package webkit

import (
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
)

// evaluateScript is a no-op without the webkit_cgo build tag. Script
// delivery requires the native evaluate call; non-cgo builds keep the
// rest of the pipeline testable.
func evaluateScript(view *webkit.WebView, js string) error {
	_ = view
	_ = js
	return nil
}
