// Package shell: this file resolves platform capabilities.
package shell

import "runtime"

// Capabilities records what the current platform supports. Resolved
// once at startup; every conditional behavior in the shell keys off a
// field here rather than re-testing the OS at the call site.
type Capabilities struct {
	// OverlayTitlebar: the host can hide native window chrome behind
	// the page, and the shell injects a drag strip to compensate.
	OverlayTitlebar bool
	// ReservedReloadChord: the primary-modifier reload chord belongs
	// to the system webview and must not be registered globally.
	ReservedReloadChord bool
	// TemplateTrayIcon: the status item expects a monochrome template
	// image recolored by the system.
	TemplateTrayIcon bool
	// WindowBackground, when non-nil, is painted behind the page on
	// platforms where transparent webview surfaces tear or flicker.
	WindowBackground *Color
}

// DetectCapabilities resolves the capability set for the running OS.
func DetectCapabilities() Capabilities {
	switch runtime.GOOS {
	case "darwin":
		return Capabilities{
			OverlayTitlebar:     true,
			ReservedReloadChord: true,
			TemplateTrayIcon:    true,
		}
	case "linux":
		return Capabilities{
			WindowBackground: &Color{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		}
	default:
		return Capabilities{}
	}
}
