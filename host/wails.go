// Package host: this file adapts the Wails application to the shell's
// Host and Surface ports.
package host

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// invisibleTitlebarHeight matches the drag strip injected by the
// shell's chrome script.
const invisibleTitlebarHeight = 28

// WailsHost drives a Wails application behind the shell.Host port.
type WailsHost struct {
	app *application.App
	log zerolog.Logger

	mu         sync.Mutex
	onPageLoad func(label, pageURL string)

	// The application menu is rebuilt from this model on every change;
	// Wails menus only support appending, the shell also prepends.
	menuOrder []string
	menuItems map[string][]shell.MenuItem
}

// NewWailsHost builds the Wails application. The run loop starts only
// when Run is called.
func NewWailsHost(log zerolog.Logger) *WailsHost {
	h := &WailsHost{
		log:       log.With().Str("component", "host").Logger(),
		menuItems: make(map[string][]shell.MenuItem),
	}
	h.app = application.New(application.Options{
		Name:        common.AppName,
		Description: "Desktop shell for the Onyx workspace",
		Mac: application.MacOptions{
			// The tray keeps the app alive with every window closed.
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})
	return h
}

// Run enters the host run loop and blocks until Quit.
func (h *WailsHost) Run() error {
	return h.app.Run()
}

// Quit ends the run loop.
func (h *WailsHost) Quit() {
	h.app.Quit()
}

// CreateWindow builds a webview window for the given options. The main
// window hides on close instead of destroying, so the tray can always
// bring it back.
func (h *WailsHost) CreateWindow(opts shell.WindowOptions) (shell.Surface, error) {
	wopts := application.WebviewWindowOptions{
		Name:      opts.Label,
		Title:     opts.Title,
		URL:       opts.URL,
		Width:     opts.Width,
		Height:    opts.Height,
		MinWidth:  opts.MinWidth,
		MinHeight: opts.MinHeight,
	}
	if opts.Background != nil {
		wopts.BackgroundColour = application.RGBA{
			Red:   opts.Background.R,
			Green: opts.Background.G,
			Blue:  opts.Background.B,
			Alpha: opts.Background.A,
		}
	}
	if opts.OverlayTitlebar {
		wopts.Mac = application.MacWindow{
			TitleBar:                application.MacTitleBarHiddenInsetUnified,
			InvisibleTitleBarHeight: invisibleTitlebarHeight,
		}
	}

	w := h.app.Window.NewWithOptions(wopts)
	if w == nil {
		return nil, common.ErrWindowCreate
	}

	if opts.Label == common.MainWindowLabel {
		w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
			e.Cancel()
			w.Hide()
		})
	}
	w.RegisterHook(events.Common.WindowRuntimeReady, func(e *application.WindowEvent) {
		// The loaded location is not observable from here; the page
		// itself reports it through the command surface.
		h.firePageLoad(opts.Label, "")
	})

	h.log.Debug().Str("label", opts.Label).Str("url", opts.URL).Msg("window created")
	return &wailsSurface{label: opts.Label, window: w}, nil
}

// OnPageLoad registers the page load callback.
func (h *WailsHost) OnPageLoad(fn func(label, pageURL string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPageLoad = fn
}

func (h *WailsHost) firePageLoad(label, pageURL string) {
	h.mu.Lock()
	fn := h.onPageLoad
	h.mu.Unlock()
	if fn != nil {
		fn(label, pageURL)
	}
}

// PrependMenuItems implements the shell menu port.
func (h *WailsHost) PrependMenuItems(menu string, items []shell.MenuItem, whenCreating []shell.MenuItem) error {
	h.mu.Lock()
	if _, ok := h.menuItems[menu]; !ok {
		h.menuOrder = append(h.menuOrder, menu)
		h.menuItems[menu] = append(append([]shell.MenuItem{}, items...), whenCreating...)
	} else {
		h.menuItems[menu] = append(append([]shell.MenuItem{}, items...), h.menuItems[menu]...)
	}
	h.mu.Unlock()
	h.rebuildMenu()
	return nil
}

// AppendMenuItems implements the shell menu port.
func (h *WailsHost) AppendMenuItems(menu string, items []shell.MenuItem) error {
	h.mu.Lock()
	if _, ok := h.menuItems[menu]; !ok {
		h.menuOrder = append(h.menuOrder, menu)
	}
	h.menuItems[menu] = append(h.menuItems[menu], items...)
	h.mu.Unlock()
	h.rebuildMenu()
	return nil
}

func (h *WailsHost) rebuildMenu() {
	h.mu.Lock()
	defer h.mu.Unlock()

	root := h.app.NewMenu()
	for _, name := range h.menuOrder {
		sub := root.AddSubmenu(name)
		for _, item := range h.menuItems[name] {
			entry := sub.Add(item.Label)
			if item.Accelerator != "" {
				entry.SetAccelerator(item.Accelerator)
			}
			switch {
			case item.Role == shell.RoleCloseWindow:
				entry.OnClick(func(ctx *application.Context) {
					if w := h.app.CurrentWindow(); w != nil {
						w.Close()
					}
				})
			case item.OnClick != nil:
				onClick := item.OnClick
				entry.OnClick(func(ctx *application.Context) {
					onClick()
				})
			}
		}
	}
	h.app.SetMenu(root)
}

// wailsSurface wraps one webview window behind the shell.Surface port.
type wailsSurface struct {
	label  string
	window application.Window
}

func (s *wailsSurface) Label() string {
	return s.label
}

func (s *wailsSurface) Show() {
	s.window.Show()
}

func (s *wailsSurface) Focus() {
	s.window.Focus()
}

func (s *wailsSurface) UnMinimize() {
	s.window.UnMinimise()
}

func (s *wailsSurface) Eval(js string) error {
	s.window.ExecJS(js)
	return nil
}

// StartDrag is not supported by the backend; dragging works through
// the chrome script's draggable strip instead.
func (s *wailsSurface) StartDrag() error {
	return common.ErrUnsupported
}
