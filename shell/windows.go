// Package shell: this file contains window lifecycle management.
package shell

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
)

// WindowManager tracks live window surfaces and implements every
// window-directed operation. The main window carries the fixed label
// "main"; additional windows get a unique generated label. Surfaces
// stay registered after the user closes them; operations against a
// closed surface fail inside the host and are logged, never surfaced.
type WindowManager struct {
	mu       sync.RWMutex
	surfaces map[string]Surface

	host     Host
	store    *config.Store
	caps     Capabilities
	injector *InjectionScheduler

	// settingsFallback is the local placeholder page used when no
	// application base URL has been captured yet.
	settingsFallback string

	log zerolog.Logger
}

// NewWindowManager builds a manager over the host boundary.
func NewWindowManager(host Host, store *config.Store, caps Capabilities, injector *InjectionScheduler, settingsFallback string, log zerolog.Logger) *WindowManager {
	return &WindowManager{
		surfaces:         make(map[string]Surface),
		host:             host,
		store:            store,
		caps:             caps,
		injector:         injector,
		settingsFallback: settingsFallback,
		log:              log.With().Str("component", "windows").Logger(),
	}
}

// CreateMainWindow synchronously builds the main window on the
// configured server URL. Called once during startup.
func (m *WindowManager) CreateMainWindow() error {
	cfg := m.store.Snapshot()
	s, err := m.host.CreateWindow(m.windowOptions(common.MainWindowLabel, cfg))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrWindowCreate, err)
	}
	m.track(s)
	m.injector.Schedule(s)
	return nil
}

// FocusMain raises the main window, restoring it from the minimized
// state first. When no main window exists a fresh window is opened so
// the operation always ends with a focused window.
func (m *WindowManager) FocusMain() {
	s, ok := m.main()
	if !ok {
		m.log.Info().Msg("no main window to focus, opening a new one")
		m.OpenNewWindow()
		return
	}
	s.UnMinimize()
	s.Show()
	s.Focus()
}

// ValidatePath checks a navigation path supplied by hosted content.
// Only same-origin relative paths are allowed; a path carrying its own
// scheme could point a surface at an arbitrary origin.
func ValidatePath(path string) error {
	if !strings.HasPrefix(path, "/") || strings.Contains(path, "://") {
		return common.ErrInvalidPath
	}
	return nil
}

// NavigateMain points the main window's content at the configured
// server URL plus path via a client-side navigation. No-op without a
// main window.
func (m *WindowManager) NavigateMain(path string) {
	s, ok := m.main()
	if !ok {
		m.log.Debug().Str("path", path).Msg("no main window to navigate")
		return
	}
	m.navigate(s, m.store.Snapshot().ServerURL+path)
}

// OpenNewWindow opens an additional window on the configured server
// URL. The build runs asynchronously; failures are logged and the
// operation is abandoned.
func (m *WindowManager) OpenNewWindow() {
	m.openWindow()
}

// NavigateSettings sends the main window to the settings destination:
// the captured application base URL with the settings fragment, or the
// local placeholder page when no base URL is known yet.
func (m *WindowManager) NavigateSettings() {
	target := m.settingsURL()
	if target == "" {
		m.log.Warn().Msg("no settings destination available")
		return
	}
	s, ok := m.main()
	if !ok {
		m.log.Debug().Msg("no main window, ignoring settings navigation")
		return
	}
	m.navigate(s, target)
	s.Show()
	s.Focus()
}

// ReloadMain reloads the main window's current page.
func (m *WindowManager) ReloadMain() {
	m.evalMain("window.location.reload();")
}

// HistoryBack walks the main window's history back one step.
func (m *WindowManager) HistoryBack() {
	m.evalMain("window.history.back();")
}

// HistoryForward walks the main window's history forward one step.
func (m *WindowManager) HistoryForward() {
	m.evalMain("window.history.forward();")
}

// StartDrag begins an interactive move of the labeled window. Hosts
// without a drag API report ErrUnsupported, which is expected and only
// logged at debug level.
func (m *WindowManager) StartDrag(label string) {
	s, ok := m.lookup(label)
	if !ok {
		m.log.Debug().Str("label", label).Msg("drag for unknown window")
		return
	}
	if err := s.StartDrag(); err != nil {
		if errors.Is(err, common.ErrUnsupported) {
			m.log.Debug().Str("label", label).Msg("host cannot initiate drag")
			return
		}
		m.log.Error().Err(err).Str("label", label).Msg("window drag failed")
	}
}

// HandlePageLoad reacts to a completed page load: chrome injection is
// re-armed for the surface and, on the first load that reports a
// usable location, the application base URL is captured.
func (m *WindowManager) HandlePageLoad(label, pageURL string) {
	s, ok := m.lookup(label)
	if !ok {
		m.log.Debug().Str("label", label).Msg("page load for unknown window")
		return
	}
	m.injector.Schedule(s)

	if pageURL == "" {
		return
	}
	base, err := DeriveBaseURL(pageURL)
	if err != nil {
		m.log.Debug().Err(err).Str("url", pageURL).Msg("ignoring unusable page URL")
		return
	}
	if m.store.SetBaseURL(base) {
		m.log.Info().Str("base_url", base).Msg("captured application base URL")
	}
}

// HasMain reports whether a main window surface is registered.
func (m *WindowManager) HasMain() bool {
	_, ok := m.main()
	return ok
}

// DeriveBaseURL reduces a loaded page URL to the application origin:
// path reset to /, query and fragment dropped.
func DeriveBaseURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidServerURL, pageURL)
	}
	u.Path = "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func (m *WindowManager) openWindow() {
	go func() {
		cfg := m.store.Snapshot()
		label := common.WindowLabelPrefix + uuid.NewString()
		s, err := m.host.CreateWindow(m.windowOptions(label, cfg))
		if err != nil {
			m.log.Error().Err(err).Str("label", label).Msg("failed to create window")
			return
		}
		m.track(s)
		m.injector.Schedule(s)
		s.Show()
		s.Focus()
	}()
}

func (m *WindowManager) windowOptions(label string, cfg config.Config) WindowOptions {
	return WindowOptions{
		Label:           label,
		Title:           cfg.WindowTitle,
		URL:             cfg.ServerURL,
		Width:           common.DefaultWindowWidth,
		Height:          common.DefaultWindowHeight,
		MinWidth:        common.MinWindowWidth,
		MinHeight:       common.MinWindowHeight,
		Transparent:     true,
		OverlayTitlebar: m.caps.OverlayTitlebar,
		Background:      m.caps.WindowBackground,
	}
}

func (m *WindowManager) settingsURL() string {
	base, ok := m.store.BaseURL()
	if !ok {
		return m.settingsFallback
	}
	u, err := url.Parse(base)
	if err != nil {
		return m.settingsFallback
	}
	u.Path = "/"
	u.RawQuery = ""
	u.Fragment = common.SettingsFragment
	return u.String()
}

func (m *WindowManager) navigate(s Surface, target string) {
	js := "window.location.href = '" + escapeJSString(target) + "';"
	if err := s.Eval(js); err != nil {
		m.log.Error().Err(err).Str("label", s.Label()).Str("url", target).Msg("navigation failed")
	}
}

// evalMain runs js in the main window, reporting whether a main window
// existed to run it in.
func (m *WindowManager) evalMain(js string) bool {
	s, ok := m.main()
	if !ok {
		m.log.Debug().Msg("no main window for script evaluation")
		return false
	}
	if err := s.Eval(js); err != nil {
		m.log.Error().Err(err).Str("label", s.Label()).Msg("script evaluation failed")
	}
	return true
}

func (m *WindowManager) track(s Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surfaces[s.Label()] = s
}

func (m *WindowManager) lookup(label string) (Surface, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.surfaces[label]
	return s, ok
}

func (m *WindowManager) main() (Surface, bool) {
	return m.lookup(common.MainWindowLabel)
}
