// Package shell: this file contains the global shortcut table and its
// controller.
package shell

import (
	"strings"

	"github.com/rs/zerolog"
)

// ModMask is a set of chord modifiers.
type ModMask uint8

const (
	// ModSuper is the platform primary modifier: Command on macOS, the
	// Windows key on Windows, Super on Linux.
	ModSuper ModMask = 1 << iota
	ModShift
	ModCtrl
	ModAlt
)

// Key is a platform-independent key name within a chord.
type Key string

const (
	KeyN            Key = "n"
	KeyR            Key = "r"
	KeyComma        Key = ","
	KeyBracketLeft  Key = "["
	KeyBracketRight Key = "]"
	KeySpace        Key = "space"
)

// Chord is a global keyboard shortcut: a modifier set plus one key.
type Chord struct {
	Mods ModMask
	Key  Key
}

// String renders the chord for logs, e.g. "Super+Shift+N".
func (c Chord) String() string {
	var parts []string
	if c.Mods&ModSuper != 0 {
		parts = append(parts, "Super")
	}
	if c.Mods&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	parts = append(parts, strings.ToUpper(string(c.Key)))
	return strings.Join(parts, "+")
}

// Binding pairs a chord with the action it fires.
type Binding struct {
	Chord  Chord
	Action Action
}

// DefaultBindings returns the global shortcut table for the given
// capability set. The reload chord is omitted where the system webview
// already owns it.
func DefaultBindings(caps Capabilities) []Binding {
	bindings := []Binding{
		{Chord{ModSuper, KeyN}, ActionNewChat},
		{Chord{ModSuper, KeyR}, ActionReloadMain},
		{Chord{ModSuper, KeyBracketLeft}, ActionHistoryBack},
		{Chord{ModSuper, KeyBracketRight}, ActionHistoryForward},
		{Chord{ModSuper | ModShift, KeyN}, ActionNewWindow},
		{Chord{ModSuper | ModShift, KeySpace}, ActionFocusMain},
		{Chord{ModSuper, KeyComma}, ActionOpenSettings},
	}
	if !caps.ReservedReloadChord {
		return bindings
	}
	kept := bindings[:0]
	for _, b := range bindings {
		if b.Action == ActionReloadMain {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// ShortcutController installs the global shortcut table against a
// registrar and routes firings through the dispatch table.
type ShortcutController struct {
	registrar ShortcutRegistrar
	router    *Router
	bindings  []Binding
	log       zerolog.Logger
}

// NewShortcutController builds a controller over the given registrar.
// A nil registrar disables global shortcuts entirely.
func NewShortcutController(registrar ShortcutRegistrar, router *Router, bindings []Binding, log zerolog.Logger) *ShortcutController {
	return &ShortcutController{
		registrar: registrar,
		router:    router,
		bindings:  bindings,
		log:       log.With().Str("component", "shortcuts").Logger(),
	}
}

// Setup registers every binding. A failed registration is logged and
// skipped; the rest of the table still installs.
func (c *ShortcutController) Setup() {
	if c.registrar == nil {
		c.log.Info().Msg("no shortcut registrar, global shortcuts disabled")
		return
	}
	installed := 0
	for _, b := range c.bindings {
		action := b.Action
		err := c.registrar.Register(b.Chord, func() {
			c.router.Dispatch(action)
		})
		if err != nil {
			c.log.Warn().Err(err).Str("chord", b.Chord.String()).Str("action", action.String()).Msg("failed to register shortcut")
			continue
		}
		installed++
	}
	c.log.Info().Int("installed", installed).Int("total", len(c.bindings)).Msg("global shortcuts registered")
}

// Close releases every registered chord.
func (c *ShortcutController) Close() {
	if c.registrar == nil {
		return
	}
	if err := c.registrar.Close(); err != nil {
		c.log.Warn().Err(err).Msg("failed to release shortcuts")
	}
}
