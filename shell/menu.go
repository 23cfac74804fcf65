// Package shell: this file contains the application menu
// contributions.
package shell

import (
	"sync"

	"github.com/rs/zerolog"
)

// MenuRole marks a menu item backed by a host-predefined behavior
// instead of an Action.
type MenuRole int

const (
	// RoleNone items dispatch their Action through the router.
	RoleNone MenuRole = iota
	// RoleCloseWindow is the host's standard close-window item.
	RoleCloseWindow
)

// MenuItem is one declarative application menu entry. OnClick is
// filled in by the MenuController; hosts invoke it verbatim.
type MenuItem struct {
	ID          string
	Label       string
	Accelerator string
	Action      Action
	Role        MenuRole
	OnClick     func()
}

// FileMenuItems returns the entries contributed to the File menu, in
// order, fronting whatever the host already has there.
func FileMenuItems() []MenuItem {
	return []MenuItem{
		{ID: "new_chat", Label: "New Chat", Accelerator: "CmdOrCtrl+N", Action: ActionNewChat},
		{ID: "new_window", Label: "New Window", Accelerator: "CmdOrCtrl+Shift+N", Action: ActionNewWindow},
	}
}

// HelpMenuItems returns the entries appended to the Help menu.
func HelpMenuItems() []MenuItem {
	return []MenuItem{
		{ID: "open_docs", Label: "Onyx Documentation", Action: ActionOpenDocs},
	}
}

// fileMenuCreationExtras are only used when the host has no File menu
// and one must be built from scratch.
func fileMenuCreationExtras() []MenuItem {
	return []MenuItem{
		{ID: "close_window", Label: "Close Window", Accelerator: "CmdOrCtrl+W", Role: RoleCloseWindow},
	}
}

// MenuController contributes the application's menu entries to the
// host exactly once. Re-running setup must not duplicate entries, so
// the controller refuses a second pass outright.
type MenuController struct {
	host   Host
	router *Router
	log    zerolog.Logger

	mu   sync.Mutex
	done bool
}

// NewMenuController builds a controller over the host menu boundary.
func NewMenuController(host Host, router *Router, log zerolog.Logger) *MenuController {
	return &MenuController{
		host:   host,
		router: router,
		log:    log.With().Str("component", "menu").Logger(),
	}
}

// Setup installs the File and Help contributions. Safe to call more
// than once; only the first call touches the host. Host failures are
// logged and the corresponding menu is left as the host had it.
func (c *MenuController) Setup() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		c.log.Debug().Msg("menu already installed, skipping")
		return
	}
	c.done = true
	c.mu.Unlock()

	if err := c.host.PrependMenuItems("File", c.wire(FileMenuItems()), c.wire(fileMenuCreationExtras())); err != nil {
		c.log.Error().Err(err).Msg("failed to install File menu entries")
	}
	if err := c.host.AppendMenuItems("Help", c.wire(HelpMenuItems())); err != nil {
		c.log.Error().Err(err).Msg("failed to install Help menu entries")
	}
}

// wire fills each item's OnClick with a dispatch through the router.
// Role-backed items keep a nil OnClick; the host supplies behavior.
func (c *MenuController) wire(items []MenuItem) []MenuItem {
	wired := make([]MenuItem, len(items))
	for i, item := range items {
		if item.Role == RoleNone {
			action := item.Action
			item.OnClick = func() {
				c.router.Dispatch(action)
			}
		}
		wired[i] = item
	}
	return wired
}
