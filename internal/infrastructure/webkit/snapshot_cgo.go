//go:build webkit_cgo

package webkit

/*
#cgo pkg-config: webkitgtk-6.0 gtk4
#include <webkit/webkit.h>

extern void goOnSnapshotReady(GObject *source, GAsyncResult *res, gpointer user_data);

static void hyperchat_start_snapshot(WebKitWebView *wv, guintptr id) {
	webkit_web_view_get_snapshot(
		wv,
		WEBKIT_SNAPSHOT_REGION_VISIBLE,
		WEBKIT_SNAPSHOT_OPTIONS_NONE,
		NULL,
		(GAsyncReadyCallback)goOnSnapshotReady,
		(gpointer)id
	);
}
*/
import "C"

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/core/gerror"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
)

const snapshotTimeout = 3 * time.Second

type snapshotResult struct {
	png []byte
	err error
}

var (
	snapMu           sync.Mutex
	nextSnapshotID   uintptr
	pendingSnapshots = map[uintptr]chan snapshotResult{}
)

// captureSnapshot renders the view's visible region and encodes it as
// PNG. The engine delivers the result asynchronously on the main
// context, so this iterates the context until the callback fires.
func captureSnapshot(ctx context.Context, view *webkit.WebView) ([]byte, error) {
	obj := coreglib.InternObject(view)
	if obj == nil {
		return nil, fmt.Errorf("snapshot: view has no native object")
	}
	wv := (*C.WebKitWebView)(unsafe.Pointer(obj.Native()))
	if wv == nil {
		return nil, fmt.Errorf("snapshot: view has no native handle")
	}

	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	ch := make(chan snapshotResult, 1)
	snapMu.Lock()
	nextSnapshotID++
	id := nextSnapshotID
	pendingSnapshots[id] = ch
	snapMu.Unlock()

	C.hyperchat_start_snapshot(wv, C.guintptr(id))
	runtime.KeepAlive(view)

	for {
		select {
		case result := <-ch:
			return result.png, result.err
		default:
		}
		if err := ctx.Err(); err != nil {
			snapMu.Lock()
			delete(pendingSnapshots, id)
			snapMu.Unlock()
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		// Recursive iteration of the default context is fine on the
		// main thread; the completion callback wakes it.
		C.g_main_context_iteration(nil, C.gboolean(1))
	}
}

//export goOnSnapshotReady
func goOnSnapshotReady(source *C.GObject, res *C.GAsyncResult, data C.gpointer) {
	id := uintptr(data)
	snapMu.Lock()
	ch := pendingSnapshots[id]
	delete(pendingSnapshots, id)
	snapMu.Unlock()
	if ch == nil {
		// Caller timed out and abandoned the capture.
		return
	}

	var cErr *C.GError
	texture := C.webkit_web_view_get_snapshot_finish(
		(*C.WebKitWebView)(unsafe.Pointer(source)), res, &cErr,
	)
	if cErr != nil {
		ch <- snapshotResult{err: gerror.Take(unsafe.Pointer(cErr))}
		return
	}
	if texture == nil {
		ch <- snapshotResult{err: fmt.Errorf("snapshot: engine returned no texture")}
		return
	}

	gbytes := C.gdk_texture_save_to_png_bytes(texture)
	var size C.gsize
	dataPtr := C.g_bytes_get_data(gbytes, &size)
	png := C.GoBytes(unsafe.Pointer(dataPtr), C.int(size))
	C.g_bytes_unref(gbytes)
	C.g_object_unref(C.gpointer(texture))

	ch <- snapshotResult{png: png}
}
