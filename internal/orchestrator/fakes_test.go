package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// fakeSurface is an in-memory port.RenderingSurface. Tests drive load
// events by calling the fire* helpers the way the engine would.
type fakeSurface struct {
	id port.SurfaceID

	mu        sync.Mutex
	callbacks *port.SurfaceCallbacks
	uri       string
	loading   bool
	destroyed bool
	visible   bool
	loads     []string
	scripts   []string
	calls     []string
	loadErr   error
}

func (f *fakeSurface) ID() port.SurfaceID { return f.id }

func (f *fakeSurface) LoadURI(_ context.Context, uri string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "LoadURI")
	if f.loadErr != nil {
		return f.loadErr
	}
	f.uri = uri
	f.loading = true
	f.loads = append(f.loads, uri)
	return nil
}

func (f *fakeSurface) StopLoading(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "StopLoading")
	f.loading = false
	return nil
}

func (f *fakeSurface) RunScript(_ context.Context, script string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "RunScript")
	f.scripts = append(f.scripts, script)
	return nil
}

func (f *fakeSurface) URI() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uri
}

func (f *fakeSurface) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *fakeSurface) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Show")
	f.visible = true
}

func (f *fakeSurface) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Hide")
	f.visible = false
}

func (f *fakeSurface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if callbacks == nil {
		f.calls = append(f.calls, "SetCallbacks(nil)")
	} else {
		f.calls = append(f.calls, "SetCallbacks")
	}
	f.callbacks = callbacks
}

func (f *fakeSurface) DetachFromParent() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "DetachFromParent")
}

func (f *fakeSurface) IsDestroyed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}

func (f *fakeSurface) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Destroy")
	f.destroyed = true
}

func (f *fakeSurface) cbs() *port.SurfaceCallbacks {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callbacks
}

func (f *fakeSurface) fireStarted() {
	if cb := f.cbs(); cb != nil && cb.OnLoadChanged != nil {
		cb.OnLoadChanged(port.LoadStarted)
	}
}

func (f *fakeSurface) fireCommitted() {
	if cb := f.cbs(); cb != nil && cb.OnLoadChanged != nil {
		cb.OnLoadChanged(port.LoadCommitted)
	}
}

func (f *fakeSurface) fireFinished() {
	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
	if cb := f.cbs(); cb != nil && cb.OnLoadChanged != nil {
		cb.OnLoadChanged(port.LoadFinished)
	}
}

func (f *fakeSurface) fireFailed(failingURI string, err error) {
	f.mu.Lock()
	f.loading = false
	f.mu.Unlock()
	if cb := f.cbs(); cb != nil && cb.OnLoadFailed != nil {
		cb.OnLoadFailed(failingURI, err)
	}
}

func (f *fakeSurface) fireCrashed() {
	if cb := f.cbs(); cb != nil && cb.OnProcessTerminated != nil {
		cb.OnProcessTerminated()
	}
}

// completeLoad runs a full successful load cycle.
func (f *fakeSurface) completeLoad() {
	f.fireStarted()
	f.fireCommitted()
	f.fireFinished()
}

func (f *fakeSurface) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.loads)
}

func (f *fakeSurface) lastLoad() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loads) == 0 {
		return ""
	}
	return f.loads[len(f.loads)-1]
}

func (f *fakeSurface) scriptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scripts)
}

func (f *fakeSurface) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakeFactory hands out fakeSurfaces and remembers them in creation order.
type fakeFactory struct {
	mu      sync.Mutex
	nextID  port.SurfaceID
	created []*fakeSurface
}

func (ff *fakeFactory) Create(context.Context) (port.RenderingSurface, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.nextID++
	s := &fakeSurface{id: ff.nextID}
	ff.created = append(ff.created, s)
	return s, nil
}

// manualDispatcher runs immediate posts inline and holds delayed posts on a
// manual clock until the test advances it.
type manualDispatcher struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []delayedTask
}

type delayedTask struct {
	due time.Duration
	fn  func()
}

func (d *manualDispatcher) Post(fn func()) { fn() }

func (d *manualDispatcher) PostDelayed(dur time.Duration, fn func()) {
	d.mu.Lock()
	d.tasks = append(d.tasks, delayedTask{due: d.now + dur, fn: fn})
	d.mu.Unlock()
}

// advance moves the clock forward and runs everything that came due,
// including tasks scheduled by tasks it runs.
func (d *manualDispatcher) advance(dur time.Duration) {
	d.mu.Lock()
	d.now += dur
	d.mu.Unlock()
	for {
		d.mu.Lock()
		var next func()
		for i, t := range d.tasks {
			if t.due <= d.now {
				next = t.fn
				d.tasks = append(d.tasks[:i], d.tasks[i+1:]...)
				break
			}
		}
		d.mu.Unlock()
		if next == nil {
			return
		}
		next()
	}
}

func (d *manualDispatcher) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

// fakeClipboard records copied text.
type fakeClipboard struct {
	mu        sync.Mutex
	copied    []string
	available bool
	err       error
}

func (c *fakeClipboard) Copy(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

func (c *fakeClipboard) Available() bool { return c.available }

// fakeSnapshots returns a fixed bitmap.
type fakeSnapshots struct {
	bitmap []byte
	err    error
}

func (s *fakeSnapshots) Capture(context.Context) ([]byte, error) {
	return s.bitmap, s.err
}

// memPromptRepo is an in-memory prompt history.
type memPromptRepo struct {
	mu      sync.Mutex
	records []entity.PromptRecord
}

func (r *memPromptRepo) SavePrompt(_ context.Context, rec entity.PromptRecord) (entity.PromptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = int64(len(r.records) + 1)
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *memPromptRepo) Recent(_ context.Context, limit int) ([]entity.PromptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PromptRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *memPromptRepo) DeleteOlderThan(_ context.Context, days int) (int64, error) {
	return 0, nil
}

func (r *memPromptRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *memPromptRepo) last() entity.PromptRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return entity.PromptRecord{}
	}
	return r.records[len(r.records)-1]
}
