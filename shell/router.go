// Package shell: this file contains the action dispatch table.
package shell

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
)

// Router owns the single action dispatch table. Shortcuts, menu items,
// tray items, and the command surface all construct an Action and call
// Dispatch; no entry point reaches window or config state directly.
type Router struct {
	windows *WindowManager
	store   *config.Store
	opener  Opener
	quit    func()
	log     zerolog.Logger
}

// NewRouter builds a router over the given collaborators. quit is
// called exactly once per ActionQuit dispatch and is expected to end
// the host run loop.
func NewRouter(windows *WindowManager, store *config.Store, opener Opener, quit func(), log zerolog.Logger) *Router {
	return &Router{
		windows: windows,
		store:   store,
		opener:  opener,
		quit:    quit,
		log:     log.With().Str("component", "router").Logger(),
	}
}

// Dispatch executes the action. Platform failures inside handlers are
// logged and swallowed so one broken integration never takes down the
// event loop.
func (r *Router) Dispatch(a Action) {
	r.log.Debug().Str("action", a.String()).Msg("dispatching action")

	switch a {
	case ActionFocusMain:
		r.windows.FocusMain()
	case ActionNewChat:
		r.windows.NavigateMain(common.ChatPath)
	case ActionNewWindow:
		r.windows.OpenNewWindow()
	case ActionOpenSettings:
		r.windows.NavigateSettings()
	case ActionReloadMain:
		r.windows.ReloadMain()
	case ActionHistoryBack:
		r.windows.HistoryBack()
	case ActionHistoryForward:
		r.windows.HistoryForward()
	case ActionOpenConfigFile:
		r.openConfigFile()
	case ActionOpenConfigDir:
		r.openConfigDir()
	case ActionOpenDocs:
		if err := r.opener.OpenURL(common.DocsURL); err != nil {
			r.log.Error().Err(err).Str("url", common.DocsURL).Msg("failed to open documentation")
		}
	case ActionShowInMenuBar:
		// Pinned tray state; nothing to do.
	case ActionQuit:
		r.log.Info().Msg("quit requested")
		r.quit()
	default:
		r.log.Warn().Str("action", a.String()).Msg("dropping unknown action")
	}
}

func (r *Router) openConfigFile() {
	path := r.store.Path()
	if path == "" {
		r.log.Error().Msg("config path unavailable, cannot open config file")
		return
	}
	if !common.FileExists(path) {
		// Materialize the current state first so the user edits a real
		// file rather than a blank editor buffer.
		if err := r.store.Save(r.store.Snapshot()); err != nil {
			r.log.Error().Err(err).Msg("failed to write config file before opening")
			return
		}
	}
	if err := r.opener.OpenFile(path); err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("failed to open config file")
	}
}

func (r *Router) openConfigDir() {
	dir := r.store.Dir()
	if dir == "" {
		r.log.Error().Msg("config directory unavailable, cannot open it")
		return
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		r.log.Error().Err(err).Str("dir", dir).Msg("failed to create config directory")
		return
	}
	if err := r.opener.OpenDir(dir); err != nil {
		r.log.Error().Err(err).Str("dir", dir).Msg("failed to open config directory")
	}
}
