// Package cli provides command-line access to Onyx Desktop's
// configuration, so the server URL can be inspected and changed from
// the terminal without launching the app.
//
// The package renders styled output when stdout is a terminal and
// plain text otherwise, which keeps the commands usable from scripts.
// The interactive editor is a small Bubble Tea program; every other
// command is a one-shot print.
package cli
