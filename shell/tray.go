// Package shell: this file contains the system tray indicator.
package shell

import (
	"fyne.io/systray"
	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

// Icons are resolved once; systray takes raw PNG bytes.
var (
	iconTray         = TrayIcon()
	iconTrayTemplate = GenerateTrayTemplateIcon()
)

// TrayItem is one declarative tray menu entry. The definitions are
// fixed for the process lifetime; nothing mutates tray state after
// setup.
type TrayItem struct {
	ID             string
	Label          string
	Tooltip        string
	Actions        []Action
	Checked        bool
	Disabled       bool
	SeparatorAfter bool
}

// TrayItems returns the tray menu in display order. The pinned
// "Show in Menu Bar" entry stays checked and disabled forever: the
// tray is the application's lifeline while every window is closed, so
// the toggle only communicates state.
func TrayItems() []TrayItem {
	return []TrayItem{
		{ID: "open_app", Label: "Open Onyx", Tooltip: "Show the main window", Actions: []Action{ActionFocusMain}},
		// Opening a chat from the tray first makes sure the main window
		// is on screen, then points it at the chat page.
		{ID: "open_chat", Label: "Open Chat Window", Tooltip: "Start a new chat", Actions: []Action{ActionFocusMain, ActionNewChat}, SeparatorAfter: true},
		{ID: "show_in_menu_bar", Label: "Show in Menu Bar", Tooltip: "Onyx stays available from the menu bar", Actions: []Action{ActionShowInMenuBar}, Checked: true, Disabled: true, SeparatorAfter: true},
		{ID: "quit", Label: "Quit Onyx", Tooltip: "Quit Onyx", Actions: []Action{ActionQuit}},
	}
}

// TrayController manages the status item and its menu.
type TrayController struct {
	router *Router
	caps   Capabilities
	log    zerolog.Logger
}

// NewTrayController creates a new tray controller.
func NewTrayController(router *Router, caps Capabilities, log zerolog.Logger) *TrayController {
	return &TrayController{
		router: router,
		caps:   caps,
		log:    log.With().Str("component", "tray").Logger(),
	}
}

// Run starts the tray indicator. This should be called from a
// goroutine as it blocks.
func (t *TrayController) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop tears the tray indicator down.
func (t *TrayController) Stop() {
	systray.Quit()
}

// onReady is called when the systray is ready.
func (t *TrayController) onReady() {
	if t.caps.TemplateTrayIcon {
		systray.SetTemplateIcon(iconTrayTemplate, iconTray)
	} else {
		systray.SetIcon(iconTray)
	}
	systray.SetTooltip(common.AppName)

	for _, entry := range TrayItems() {
		var item *systray.MenuItem
		if entry.Checked {
			item = systray.AddMenuItemCheckbox(entry.Label, entry.Tooltip, true)
		} else {
			item = systray.AddMenuItem(entry.Label, entry.Tooltip)
		}
		if entry.Disabled {
			item.Disable()
		} else {
			go func(mi *systray.MenuItem, actions []Action) {
				for range mi.ClickedCh {
					for _, a := range actions {
						t.router.Dispatch(a)
					}
				}
			}(item, entry.Actions)
		}
		if entry.SeparatorAfter {
			systray.AddSeparator()
		}
	}

	t.log.Info().Msg("tray indicator ready")
}

// onExit is called when the systray is about to exit.
func (t *TrayController) onExit() {
	t.log.Debug().Msg("tray indicator stopped")
}
