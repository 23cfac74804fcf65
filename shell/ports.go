// Package shell: this file contains the ports through which the shell
// drives its platform collaborators. Implementations live outside the
// package; tests substitute fakes.
package shell

// WindowOptions describes a window surface to be built by the host.
type WindowOptions struct {
	Label     string
	Title     string
	URL       string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	// Transparent requests an alpha-capable surface.
	Transparent bool
	// OverlayTitlebar requests hidden-inset native chrome; the drag
	// region is supplied by the injected chrome script.
	OverlayTitlebar bool
	// Background, when non-nil, paints a solid backdrop on platforms
	// where transparency over a webview is unreliable.
	Background *Color
}

// Color is an RGBA window backdrop color.
type Color struct {
	R, G, B, A uint8
}

// Surface is a single live native window hosting the web content.
// Implementations must tolerate calls after the user closed the
// window: the shell does not track closure, so late calls simply fail
// or no-op.
type Surface interface {
	Label() string
	Show()
	Focus()
	UnMinimize()
	// Eval runs a script inside the hosted page. Navigation, reload,
	// and history all go through Eval against the page's own location
	// and history objects.
	Eval(js string) error
	// StartDrag begins an interactive window drag, when the host
	// supports initiating one from this side of the boundary.
	StartDrag() error
}

// Host is the windowing framework boundary.
type Host interface {
	// CreateWindow builds and registers a new window surface.
	CreateWindow(opts WindowOptions) (Surface, error)
	// OnPageLoad registers the callback invoked every time a surface
	// finishes loading a page. pageURL may be empty when the host
	// cannot observe the loaded location.
	OnPageLoad(fn func(label, pageURL string))
	// PrependMenuItems inserts items at the front of the named
	// application submenu, creating the submenu with items followed by
	// whenCreating when the host has no such submenu yet.
	PrependMenuItems(menu string, items []MenuItem, whenCreating []MenuItem) error
	// AppendMenuItems appends items to the named application submenu,
	// creating it when absent.
	AppendMenuItems(menu string, items []MenuItem) error
	// Quit ends the host's run loop; the process then exits normally.
	Quit()
}

// ShortcutRegistrar registers OS-global keyboard chords.
type ShortcutRegistrar interface {
	// Register binds fire to the chord. Registration failures are
	// reported per chord so the remaining set still installs.
	Register(chord Chord, fire func()) error
	// Close releases every registered chord.
	Close() error
}

// Opener launches platform default handlers for external resources.
type Opener interface {
	OpenURL(url string) error
	OpenFile(path string) error
	OpenDir(path string) error
}
