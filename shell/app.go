// Package shell: this file wires the shell components together and
// owns their lifecycle.
package shell

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/config"
)

// Options carries the collaborators the shell is built over.
type Options struct {
	Host         Host
	Store        *config.Store
	Capabilities Capabilities
	// Registrar may be nil; global shortcuts are then disabled.
	Registrar ShortcutRegistrar
	Opener    Opener
	// BridgeURL and BridgeToken identify the local command surface and
	// are seeded into every hosted page.
	BridgeURL   string
	BridgeToken string
	// SettingsFallback is the settings destination used before an
	// application base URL has been captured.
	SettingsFallback string
	Logger           zerolog.Logger
}

// Shell is the coordination layer between the hosted web application
// and the native desktop surface.
type Shell struct {
	host  Host
	store *config.Store
	caps  Capabilities

	injector  *InjectionScheduler
	windows   *WindowManager
	router    *Router
	shortcuts *ShortcutController
	menu      *MenuController
	tray      *TrayController

	trayStarted atomic.Bool
	quitOnce    sync.Once
	log         zerolog.Logger
}

// New builds the shell component graph. Nothing touches the host until
// Setup.
func New(opts Options) *Shell {
	s := &Shell{
		host:  opts.Host,
		store: opts.Store,
		caps:  opts.Capabilities,
		log:   opts.Logger.With().Str("component", "shell").Logger(),
	}
	// Without a bridge the chrome script has nothing to talk to.
	s.injector = NewInjectionScheduler(opts.BridgeURL != "", func(label string) string {
		return ChromeScript(label, opts.BridgeURL, opts.BridgeToken, opts.Capabilities.OverlayTitlebar)
	}, opts.Logger)
	s.windows = NewWindowManager(opts.Host, opts.Store, opts.Capabilities, s.injector, opts.SettingsFallback, opts.Logger)
	s.router = NewRouter(s.windows, opts.Store, opts.Opener, s.Quit, opts.Logger)
	s.shortcuts = NewShortcutController(opts.Registrar, s.router, DefaultBindings(opts.Capabilities), opts.Logger)
	s.menu = NewMenuController(opts.Host, s.router, opts.Logger)
	s.tray = NewTrayController(s.router, opts.Capabilities, opts.Logger)
	return s
}

// Setup wires the shell into the host: page-load feedback, the main
// window, menu contributions, global shortcuts, and config hot
// reload. Each integration failure is logged and the rest still comes
// up, so a broken platform feature degrades the app instead of
// stopping it.
func (s *Shell) Setup() {
	s.host.OnPageLoad(s.windows.HandlePageLoad)

	if err := s.windows.CreateMainWindow(); err != nil {
		s.log.Error().Err(err).Msg("failed to create main window")
	}
	s.menu.Setup()
	s.shortcuts.Setup()

	err := s.store.Watch(func(cfg config.Config) {
		s.log.Info().Str("server_url", cfg.ServerURL).Msg("configuration reloaded from disk")
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("config hot reload unavailable")
	}
}

// StartTray brings up the status item. Kept apart from Setup so
// headless contexts never touch the system tray.
func (s *Shell) StartTray() {
	s.trayStarted.Store(true)
	go s.tray.Run()
}

// Router exposes the dispatch table to additional entry points.
func (s *Shell) Router() *Router {
	return s.router
}

// Windows exposes the window manager to the command surface.
func (s *Shell) Windows() *WindowManager {
	return s.windows
}

// Store exposes the configuration store.
func (s *Shell) Store() *config.Store {
	return s.store
}

// Quit tears the shell down exactly once: shortcuts released, tray
// dismissed, config watcher closed, host run loop ended. The process
// then exits with status zero.
func (s *Shell) Quit() {
	s.quitOnce.Do(func() {
		s.log.Info().Msg("shutting down")
		s.shortcuts.Close()
		if s.trayStarted.Load() {
			s.tray.Stop()
		}
		s.store.Close()
		s.host.Quit()
	})
}
