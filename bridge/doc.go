// Package bridge runs the loopback HTTP endpoint that connects hosted
// web content back to the shell.
//
// The shell injects a small script into every window surface; that
// script talks to this server to report completed page loads, start
// native window drags, and invoke shell commands. The server also
// serves the built-in settings page used when no deployment is
// reachable.
//
// # Security Model
//
// The server binds to 127.0.0.1 on an ephemeral port and mints a
// per-process token at startup. Every API request must present the
// token in the X-Onyx-Token header; the settings page receives it via
// a query parameter because window navigation cannot set headers.
// Other local processes and browser pages never learn the token, so
// they cannot drive the shell.
//
// # Lifecycle
//
// New binds the listener and mints the token before any shell
// component exists, so the injected script can be rendered with the
// final bridge address. Serve attaches the handlers once the shell is
// built. Close shuts the listener down.
package bridge
