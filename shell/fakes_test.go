package shell

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
)

type fakeSurface struct {
	mu      sync.Mutex
	label   string
	opts    WindowOptions
	evals   []string
	evalErr error
	shows   int
	focuses int
	unmins  int
	drags   int
	dragErr error
}

func (f *fakeSurface) Label() string { return f.label }

func (f *fakeSurface) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
}

func (f *fakeSurface) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focuses++
}

func (f *fakeSurface) UnMinimize() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unmins++
}

func (f *fakeSurface) Eval(js string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals = append(f.evals, js)
	return f.evalErr
}

func (f *fakeSurface) StartDrag() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drags++
	return f.dragErr
}

func (f *fakeSurface) evalCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.evals)
}

func (f *fakeSurface) lastEval() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.evals) == 0 {
		return ""
	}
	return f.evals[len(f.evals)-1]
}

func (f *fakeSurface) evalsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.evals...)
}

func (f *fakeSurface) containsEval(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, js := range f.evals {
		if strings.Contains(js, substr) {
			return true
		}
	}
	return false
}

type fakeHost struct {
	mu         sync.Mutex
	created    []*fakeSurface
	createdCh  chan *fakeSurface
	createErr  error
	pageLoad   func(label, pageURL string)
	menus      map[string][]MenuItem
	menuCalls  int
	prependErr error
	appendErr  error
	quits      int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		createdCh: make(chan *fakeSurface, 16),
		menus:     make(map[string][]MenuItem),
	}
}

func (h *fakeHost) CreateWindow(opts WindowOptions) (Surface, error) {
	h.mu.Lock()
	if h.createErr != nil {
		err := h.createErr
		h.mu.Unlock()
		return nil, err
	}
	s := &fakeSurface{label: opts.Label, opts: opts}
	h.created = append(h.created, s)
	h.mu.Unlock()
	select {
	case h.createdCh <- s:
	default:
	}
	return s, nil
}

func (h *fakeHost) OnPageLoad(fn func(label, pageURL string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pageLoad = fn
}

func (h *fakeHost) PrependMenuItems(menu string, items []MenuItem, whenCreating []MenuItem) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.menuCalls++
	if h.prependErr != nil {
		return h.prependErr
	}
	existing, ok := h.menus[menu]
	if !ok {
		h.menus[menu] = append(append([]MenuItem{}, items...), whenCreating...)
		return nil
	}
	h.menus[menu] = append(append([]MenuItem{}, items...), existing...)
	return nil
}

func (h *fakeHost) AppendMenuItems(menu string, items []MenuItem) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.menuCalls++
	if h.appendErr != nil {
		return h.appendErr
	}
	h.menus[menu] = append(h.menus[menu], items...)
	return nil
}

func (h *fakeHost) Quit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.quits++
}

func (h *fakeHost) createdCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.created)
}

func (h *fakeHost) surface(i int) *fakeSurface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created[i]
}

func (h *fakeHost) menuItems(name string) []MenuItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]MenuItem{}, h.menus[name]...)
}

// waitCreated blocks until the host builds another window or the
// timeout elapses.
func (h *fakeHost) waitCreated(t *testing.T) *fakeSurface {
	t.Helper()
	select {
	case s := <-h.createdCh:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for window creation")
		return nil
	}
}

type fakeRegistrar struct {
	mu     sync.Mutex
	fires  map[string]func()
	failOn map[string]error
	closed bool
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{fires: make(map[string]func())}
}

func (r *fakeRegistrar) Register(chord Chord, fire func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn[chord.String()]; err != nil {
		return err
	}
	r.fires[chord.String()] = fire
	return nil
}

func (r *fakeRegistrar) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeRegistrar) fire(chord string) bool {
	r.mu.Lock()
	fn, ok := r.fires[chord]
	r.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

func (r *fakeRegistrar) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fires)
}

type fakeOpener struct {
	mu    sync.Mutex
	urls  []string
	files []string
	dirs  []string
	err   error
}

func (o *fakeOpener) OpenURL(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *fakeOpener) OpenFile(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, path)
	return o.err
}

func (o *fakeOpener) OpenDir(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dirs = append(o.dirs, path)
	return o.err
}

// harness bundles a window manager and router over fresh fakes.
type harness struct {
	host    *fakeHost
	store   *config.Store
	opener  *fakeOpener
	inj     *InjectionScheduler
	windows *WindowManager
	router  *Router

	mu        sync.Mutex
	quitCalls int
}

const testSettingsFallback = "http://127.0.0.1:34999/settings"

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		host:   newFakeHost(),
		store:  config.NewStoreAt(filepath.Join(t.TempDir(), common.ConfigFileName), zerolog.Nop()),
		opener: &fakeOpener{},
	}
	h.inj = NewInjectionScheduler(true, func(label string) string {
		return "/* chrome " + label + " */"
	}, zerolog.Nop())
	h.inj.delays = []time.Duration{0}
	h.windows = NewWindowManager(h.host, h.store, Capabilities{}, h.inj, testSettingsFallback, zerolog.Nop())
	h.router = NewRouter(h.windows, h.store, h.opener, func() {
		h.mu.Lock()
		h.quitCalls++
		h.mu.Unlock()
	}, zerolog.Nop())
	return h
}

func (h *harness) quits() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quitCalls
}

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}
