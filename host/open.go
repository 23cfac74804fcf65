// Package host: this file contains the opener backed by the system
// default handlers (browser, editor, file manager).
package host

import (
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

// BrowserOpener hands URLs and paths to the platform's default
// applications. Every call is logged so a user can see what left
// the app.
type BrowserOpener struct {
	log zerolog.Logger
}

// NewBrowserOpener returns an opener that uses the OS registered
// handlers for each resource kind.
func NewBrowserOpener(log zerolog.Logger) *BrowserOpener {
	return &BrowserOpener{log: log.With().Str("component", "opener").Logger()}
}

// OpenURL opens url in the default web browser.
func (o *BrowserOpener) OpenURL(url string) error {
	o.log.Debug().Str("url", url).Msg("opening URL externally")
	return browser.OpenURL(url)
}

// OpenFile opens path with whatever the OS associates with it.
func (o *BrowserOpener) OpenFile(path string) error {
	o.log.Debug().Str("path", path).Msg("opening file externally")
	return browser.OpenFile(path)
}

// OpenDir reveals path in the platform file manager. Directories go
// through the same handler chain as files; the OS resolves them to
// the file manager.
func (o *BrowserOpener) OpenDir(path string) error {
	o.log.Debug().Str("path", path).Msg("opening directory externally")
	return browser.OpenFile(path)
}
