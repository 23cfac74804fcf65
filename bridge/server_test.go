// Package bridge: this file contains tests for the loopback server.
package bridge

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
	"github.com/onyx-dot-app/onyx-desktop/shell"
)

type stubSurface struct {
	mu    sync.Mutex
	label string
	drags int
	evals []string
}

func (s *stubSurface) Label() string { return s.label }
func (s *stubSurface) Show()         {}
func (s *stubSurface) Focus()        {}
func (s *stubSurface) UnMinimize()   {}

func (s *stubSurface) Eval(js string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = append(s.evals, js)
	return nil
}

func (s *stubSurface) StartDrag() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drags++
	return nil
}

func (s *stubSurface) dragCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drags
}

func (s *stubSurface) containsEval(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, js := range s.evals {
		if strings.Contains(js, substr) {
			return true
		}
	}
	return false
}

type stubHost struct {
	mu      sync.Mutex
	created []*stubSurface
}

func (h *stubHost) CreateWindow(opts shell.WindowOptions) (shell.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := &stubSurface{label: opts.Label}
	h.created = append(h.created, s)
	return s, nil
}

func (h *stubHost) OnPageLoad(fn func(label, pageURL string)) {}

func (h *stubHost) PrependMenuItems(menu string, items, whenCreating []shell.MenuItem) error {
	return nil
}

func (h *stubHost) AppendMenuItems(menu string, items []shell.MenuItem) error { return nil }

func (h *stubHost) Quit() {}

func (h *stubHost) createdCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.created)
}

func (h *stubHost) surface(i int) *stubSurface {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i >= len(h.created) {
		return nil
	}
	return h.created[i]
}

type stubOpener struct {
	mu   sync.Mutex
	urls []string
}

func (o *stubOpener) OpenURL(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

func (o *stubOpener) OpenFile(path string) error { return nil }
func (o *stubOpener) OpenDir(path string) error  { return nil }

func (o *stubOpener) urlCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.urls)
}

func (o *stubOpener) lastURL() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.urls) == 0 {
		return ""
	}
	return o.urls[len(o.urls)-1]
}

type bridgeHarness struct {
	srv     *Server
	store   *config.Store
	windows *shell.WindowManager
	host    *stubHost
	opener  *stubOpener
}

func newBridgeHarness(t *testing.T) *bridgeHarness {
	t.Helper()
	log := zerolog.Nop()
	store := config.NewStoreAt(filepath.Join(t.TempDir(), common.ConfigFileName), log)
	host := &stubHost{}
	inj := shell.NewInjectionScheduler(false, func(string) string { return "" }, log)
	windows := shell.NewWindowManager(host, store, shell.Capabilities{}, inj, "http://127.0.0.1:1/settings", log)
	opener := &stubOpener{}
	router := shell.NewRouter(windows, store, opener, func() {}, log)

	srv, err := New(log)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	srv.Serve(router, store, windows)
	t.Cleanup(srv.Close)

	return &bridgeHarness{srv: srv, store: store, windows: windows, host: host, opener: opener}
}

// request performs an HTTP call against the harness server. An empty
// token omits the header entirely.
func (h *bridgeHarness) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.srv.BaseURL()+path, rdr)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestBridgeRequiresToken(t *testing.T) {
	h := newBridgeHarness(t)

	resp := h.request(t, http.MethodPost, "/api/action", "", actionRequest{ID: "new_window"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	resp = h.request(t, http.MethodPost, "/api/action", "wrong-token", actionRequest{ID: "new_window"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	if h.host.createdCount() != 0 {
		t.Error("unauthenticated request reached the dispatcher")
	}
}

func TestBridgePreflightSkipsAuth(t *testing.T) {
	h := newBridgeHarness(t)

	resp := h.request(t, http.MethodOptions, "/api/action", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, TokenHeader) {
		t.Errorf("Access-Control-Allow-Headers = %q, want it to include %s", got, TokenHeader)
	}
}

func TestBridgeBootstrap(t *testing.T) {
	h := newBridgeHarness(t)

	resp := h.request(t, http.MethodGet, "/api/bootstrap", h.srv.Token(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var state config.BootstrapState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode bootstrap: %v", err)
	}
	if state.ServerURL != common.DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", state.ServerURL, common.DefaultServerURL)
	}
	if state.ConfigExists {
		t.Error("ConfigExists = true before any save")
	}
}

func TestBridgeSetServerURL(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	resp := h.request(t, http.MethodPost, "/api/config/server-url", token,
		serverURLRequest{ServerURL: "https://ws.example.com///"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out serverURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ServerURL != "https://ws.example.com" {
		t.Errorf("normalized URL = %q, want %q", out.ServerURL, "https://ws.example.com")
	}
	if got := h.store.Snapshot().ServerURL; got != "https://ws.example.com" {
		t.Errorf("store ServerURL = %q, want %q", got, "https://ws.example.com")
	}
	if !common.FileExists(h.store.Path()) {
		t.Error("config file was not written after save")
	}
}

func TestBridgeSetServerURLRejectsInvalid(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	resp := h.request(t, http.MethodPost, "/api/config/server-url", token,
		serverURLRequest{ServerURL: "ftp://example.com"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid scheme: status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if got := h.store.Snapshot().ServerURL; got != common.DefaultServerURL {
		t.Errorf("store ServerURL changed to %q on rejected input", got)
	}

	req, err := http.NewRequest(http.MethodPost, h.srv.BaseURL()+"/api/config/server-url",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set(TokenHeader, token)
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("malformed request: %v", err)
	}
	defer raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed json: status = %d, want %d", raw.StatusCode, http.StatusBadRequest)
	}
}

func TestBridgeConfigPath(t *testing.T) {
	h := newBridgeHarness(t)

	resp := h.request(t, http.MethodGet, "/api/config/path", h.srv.Token(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out configPathResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Path != h.store.Path() {
		t.Errorf("path = %q, want %q", out.Path, h.store.Path())
	}
}

func TestBridgeReset(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	h.request(t, http.MethodPost, "/api/config/server-url", token,
		serverURLRequest{ServerURL: "https://ws.example.com"})

	resp := h.request(t, http.MethodPost, "/api/config/reset", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out serverURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ServerURL != common.DefaultServerURL {
		t.Errorf("ServerURL after reset = %q, want %q", out.ServerURL, common.DefaultServerURL)
	}
}

func TestBridgeActionDispatch(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	resp := h.request(t, http.MethodPost, "/api/action", token, actionRequest{ID: "new_window"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new_window: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	waitFor(t, 2*time.Second, func() bool { return h.host.createdCount() == 1 },
		"dispatched new_window never created a window")

	resp = h.request(t, http.MethodPost, "/api/action", token, actionRequest{ID: "open_docs"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open_docs: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	waitFor(t, 2*time.Second, func() bool { return h.opener.urlCount() == 1 },
		"dispatched open_docs never opened a URL")
	if got := h.opener.lastURL(); got != common.DocsURL {
		t.Errorf("opened URL = %q, want %q", got, common.DocsURL)
	}
}

func TestBridgeActionValidation(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	resp := h.request(t, http.MethodPost, "/api/action", token, actionRequest{ID: "no_such_action"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown action: status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	for _, id := range []string{"quit", "show_in_menu_bar"} {
		resp = h.request(t, http.MethodPost, "/api/action", token, actionRequest{ID: id})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s: status = %d, want %d", id, resp.StatusCode, http.StatusForbidden)
		}
	}
}

func TestBridgePageLoaded(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	if err := h.windows.CreateMainWindow(); err != nil {
		t.Fatalf("CreateMainWindow: %v", err)
	}

	resp := h.request(t, http.MethodPost, "/api/page-loaded", token,
		windowRequest{Window: common.MainWindowLabel, URL: common.DefaultServerURL + "/chat?x=1#frag"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	base, ok := h.store.BaseURL()
	if !ok {
		t.Fatal("page load report did not capture a base URL")
	}
	if base != common.DefaultServerURL {
		t.Errorf("base URL = %q, want %q", base, common.DefaultServerURL)
	}

	resp = h.request(t, http.MethodPost, "/api/page-loaded", token, windowRequest{URL: "https://x.example.com"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing window: status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestBridgeNavigate(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	if err := h.windows.CreateMainWindow(); err != nil {
		t.Fatalf("CreateMainWindow: %v", err)
	}

	resp := h.request(t, http.MethodPost, "/api/navigate", token, navigateRequest{Path: "/chat"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !h.host.surface(0).containsEval(common.DefaultServerURL + "/chat") {
		t.Error("main window should navigate to the requested path")
	}
}

func TestBridgeNavigateRejectsInvalidPath(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	if err := h.windows.CreateMainWindow(); err != nil {
		t.Fatalf("CreateMainWindow: %v", err)
	}

	for _, path := range []string{"", "chat", "https://evil.example.com/"} {
		resp := h.request(t, http.MethodPost, "/api/navigate", token, navigateRequest{Path: path})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("path %q: status = %d, want %d", path, resp.StatusCode, http.StatusBadRequest)
		}
	}
	if h.host.surface(0).containsEval("window.location.href") {
		t.Error("rejected paths must not reach the window")
	}
}

func TestBridgeWindowDrag(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	if err := h.windows.CreateMainWindow(); err != nil {
		t.Fatalf("CreateMainWindow: %v", err)
	}

	resp := h.request(t, http.MethodPost, "/api/window/drag", token,
		windowRequest{Window: common.MainWindowLabel})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := h.host.surface(0).dragCount(); got != 1 {
		t.Errorf("drag count = %d, want 1", got)
	}
}

func TestBridgeSettingsPage(t *testing.T) {
	h := newBridgeHarness(t)

	resp := h.request(t, http.MethodGet, "/settings?token="+h.srv.Token(), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read settings page: %v", err)
	}
	page := string(body)
	if !strings.Contains(page, common.DefaultServerURL) {
		t.Error("settings page does not embed the current server URL")
	}
	if !strings.Contains(page, h.srv.Token()) {
		t.Error("settings page does not embed the bridge token")
	}

	resp = h.request(t, http.MethodGet, "/settings", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing query token: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestBridgeMethodChecks(t *testing.T) {
	h := newBridgeHarness(t)
	token := h.srv.Token()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/action"},
		{http.MethodPost, "/api/bootstrap"},
		{http.MethodPost, "/api/config/path"},
		{http.MethodGet, "/api/config/reset"},
		{http.MethodGet, "/api/navigate"},
		{http.MethodGet, "/api/page-loaded"},
		{http.MethodGet, "/api/window/drag"},
	}
	for _, tc := range cases {
		resp := h.request(t, tc.method, tc.path, token, nil)
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, resp.StatusCode, http.StatusMethodNotAllowed)
		}
	}
}

func TestBridgeSettingsURL(t *testing.T) {
	h := newBridgeHarness(t)

	u := h.srv.SettingsURL()
	if !strings.HasPrefix(u, h.srv.BaseURL()+"/settings?token=") {
		t.Errorf("SettingsURL = %q, want prefix %q", u, h.srv.BaseURL()+"/settings?token=")
	}
	resp := h.request(t, http.MethodGet, strings.TrimPrefix(u, h.srv.BaseURL()), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET SettingsURL: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
