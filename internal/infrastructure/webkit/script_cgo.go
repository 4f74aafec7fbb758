//go:build webkit_cgo

package webkit

/*
#cgo pkg-config: webkitgtk-6.0 gtk4
#include <stdlib.h>
#include <webkit/webkit.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
)

// evaluateScript runs js in the view's page context, fire-and-forget. The
// page sees evaluation errors; callers only learn about a dead view.
func evaluateScript(view *webkit.WebView, js string) error {
	obj := coreglib.InternObject(view)
	if obj == nil {
		return fmt.Errorf("webkit: script target has no native object")
	}
	wv := (*C.WebKitWebView)(unsafe.Pointer(obj.Native()))
	if wv == nil {
		return fmt.Errorf("webkit: script target has no native view")
	}

	cjs := C.CString(js)
	defer C.free(unsafe.Pointer(cjs))

	// length -1: NUL-terminated; world/source/cancellable/callback all NULL.
	C.webkit_web_view_evaluate_javascript(
		wv,
		(*C.gchar)(cjs),
		C.gssize(-1),
		nil,
		nil,
		nil,
		nil,
		nil,
	)
	runtime.KeepAlive(view)
	return nil
}
