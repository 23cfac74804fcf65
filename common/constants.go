// Package common provides shared constants, types, and utilities
// used across the Onyx Desktop application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "app.onyx.onyx-desktop"
	// AppName is the display name of the application.
	AppName = "Onyx"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "onyx-desktop"
)

// File names used by the application.
const (
	ConfigFileName = "config.json"
	LogFileName    = "onyx-desktop.log"
)

// Well-known URLs.
const (
	// DefaultServerURL is the server endpoint used until the user
	// configures their own deployment.
	DefaultServerURL = "https://cloud.onyx.app"
	// DocsURL is opened by the Help menu's documentation item.
	DocsURL = "https://docs.onyx.app"
	// ChatPath is the path navigated to for a new chat.
	ChatPath = "/chat"
	// SettingsFragment is the fragment marking the settings view.
	SettingsFragment = "settings"
)

// Window geometry.
const (
	// DefaultWindowWidth is the initial width of a window surface.
	DefaultWindowWidth = 1200
	// DefaultWindowHeight is the initial height of a window surface.
	DefaultWindowHeight = 800
	// MinWindowWidth is the minimum window width.
	MinWindowWidth = 800
	// MinWindowHeight is the minimum window height.
	MinWindowHeight = 600
	// TrayIconSize is the size of the generated system tray icon.
	TrayIconSize = 22
)

// Window labels.
const (
	// MainWindowLabel identifies the distinguished main surface.
	MainWindowLabel = "main"
	// WindowLabelPrefix prefixes generated secondary window labels.
	WindowLabelPrefix = "onyx-"
)

// Timeouts and limits.
const (
	// BridgeReadHeaderTimeout bounds header reads on the loopback bridge.
	BridgeReadHeaderTimeout = 2 * time.Second
	// BridgeMaxBodySize caps request bodies accepted by the bridge.
	BridgeMaxBodySize = 1 << 20
	// WatchDebounce coalesces bursts of config file change events.
	WatchDebounce = 200 * time.Millisecond
)

// InjectionDelays is the fixed backoff schedule, relative to arming,
// at which the chrome script is re-applied to a window. The schedule is
// intentionally front-loaded: most page loads settle within the first
// second, the tail covers slow remote deployments.
var InjectionDelays = []time.Duration{
	0,
	200 * time.Millisecond,
	600 * time.Millisecond,
	1200 * time.Millisecond,
	2000 * time.Millisecond,
	4000 * time.Millisecond,
	6000 * time.Millisecond,
	8000 * time.Millisecond,
	10000 * time.Millisecond,
}
