// Package host adapts the shell's platform ports to concrete
// backends: window surfaces and application menus on Wails, global
// shortcuts on the system hotkey facility, and external resource
// opening on the platform default handlers.
//
// Everything here is deliberately thin. Behavior lives in the shell
// package; this package only translates port calls into backend calls
// and backend events into port callbacks.
package host
