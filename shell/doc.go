// Package shell is the coordination layer of the Onyx desktop app: it
// routes user intent from every native entry point into a single
// action dispatch table and keeps window, menu, tray, shortcut, and
// configuration state consistent around the hosted web application.
//
// # Architecture
//
// The hosted product lives at a configurable server URL; the shell
// owns everything native around it:
//
//   - WindowManager tracks window surfaces and implements the
//     window-directed operations (focus, navigate, reload, history).
//   - Router owns the closed Action set and its single dispatch table.
//     Shortcuts, menus, the tray, and the local command surface all
//     resolve to an Action and go through Dispatch.
//   - InjectionScheduler re-applies the window chrome script on a
//     fixed delay ladder, since the page reloads at times the shell
//     cannot predict.
//   - ShortcutController, MenuController, and TrayController install
//     the native entry points.
//
// The platform itself stays behind the Host and Surface ports, so the
// whole layer is exercised in tests with fakes.
//
// # Degraded Startup
//
// Setup treats every host integration as optional: a failure to build
// the main window, contribute menu items, or register a shortcut is
// logged and startup continues. The tray and the command surface keep
// the application reachable even when most of the native surface is
// broken.
package shell
