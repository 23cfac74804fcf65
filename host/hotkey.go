// Package host: this file implements the global shortcut registrar.
package host

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// HotkeyRegistrar implements shell.ShortcutRegistrar on the system
// hotkey facility. Chords are translated to platform key codes in the
// per-OS files next to this one.
type HotkeyRegistrar struct {
	log zerolog.Logger

	mu     sync.Mutex
	keys   []*hotkey.Hotkey
	stop   chan struct{}
	closed bool
}

// NewHotkeyRegistrar creates an empty registrar.
func NewHotkeyRegistrar(log zerolog.Logger) *HotkeyRegistrar {
	return &HotkeyRegistrar{
		log:  log.With().Str("component", "hotkeys").Logger(),
		stop: make(chan struct{}),
	}
}

// Register binds fire to the chord. The error distinguishes chords the
// platform cannot express from chords another program already holds.
func (r *HotkeyRegistrar) Register(chord shell.Chord, fire func()) error {
	key, ok := platformKey(chord.Key)
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrChordUnknown, string(chord.Key))
	}

	hk := hotkey.New(platformModifiers(chord.Mods), key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrChordTaken, err)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		hk.Unregister()
		return fmt.Errorf("%w: registrar closed", common.ErrPlatform)
	}
	r.keys = append(r.keys, hk)
	r.mu.Unlock()

	go r.listen(hk, fire)
	r.log.Debug().Str("chord", chord.String()).Msg("global shortcut registered")
	return nil
}

func (r *HotkeyRegistrar) listen(hk *hotkey.Hotkey, fire func()) {
	for {
		select {
		case <-r.stop:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			fire()
		}
	}
}

// Close unregisters every chord and stops the listeners.
func (r *HotkeyRegistrar) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.stop)

	var firstErr error
	for _, hk := range r.keys {
		if err := hk.Unregister(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.keys = nil
	return firstErr
}
