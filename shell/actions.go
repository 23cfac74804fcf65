// Package shell: this file defines the closed action set shared by
// every entry point.
package shell

// Action identifies one user-facing operation. The set is closed:
// every entry point (shortcut, menu item, tray item, command surface)
// resolves to an Action and hands it to the Router, which owns the
// single dispatch table.
type Action int

const (
	// ActionFocusMain raises the main window, creating a replacement
	// window when none exists.
	ActionFocusMain Action = iota
	// ActionNewChat points the main window at the chat route.
	ActionNewChat
	// ActionNewWindow opens an additional window on the server root.
	ActionNewWindow
	// ActionOpenSettings navigates the main window to the settings
	// destination.
	ActionOpenSettings
	// ActionReloadMain reloads the main window's page.
	ActionReloadMain
	// ActionHistoryBack walks the main window's history back one step.
	ActionHistoryBack
	// ActionHistoryForward walks the main window's history forward.
	ActionHistoryForward
	// ActionOpenConfigFile opens the configuration file with the
	// platform default handler.
	ActionOpenConfigFile
	// ActionOpenConfigDir reveals the configuration directory in the
	// platform file manager.
	ActionOpenConfigDir
	// ActionOpenDocs opens the product documentation in the default
	// browser.
	ActionOpenDocs
	// ActionShowInMenuBar is the pinned tray toggle. The item exists
	// to communicate state and dispatches to a no-op.
	ActionShowInMenuBar
	// ActionQuit tears the application down with a zero exit status.
	ActionQuit
)

// String returns the stable identifier of the action. These ids cross
// the process boundary (command surface, logs), so they must not
// change between releases.
func (a Action) String() string {
	switch a {
	case ActionFocusMain:
		return "focus_main"
	case ActionNewChat:
		return "new_chat"
	case ActionNewWindow:
		return "new_window"
	case ActionOpenSettings:
		return "open_settings"
	case ActionReloadMain:
		return "reload_main"
	case ActionHistoryBack:
		return "history_back"
	case ActionHistoryForward:
		return "history_forward"
	case ActionOpenConfigFile:
		return "open_config_file"
	case ActionOpenConfigDir:
		return "open_config_dir"
	case ActionOpenDocs:
		return "open_docs"
	case ActionShowInMenuBar:
		return "show_in_menu_bar"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// AllActions lists every member of the closed action set.
func AllActions() []Action {
	return []Action{
		ActionFocusMain,
		ActionNewChat,
		ActionNewWindow,
		ActionOpenSettings,
		ActionReloadMain,
		ActionHistoryBack,
		ActionHistoryForward,
		ActionOpenConfigFile,
		ActionOpenConfigDir,
		ActionOpenDocs,
		ActionShowInMenuBar,
		ActionQuit,
	}
}

// ParseAction resolves a boundary identifier back to its Action.
// Unknown identifiers report ok=false; callers reject them instead of
// guessing.
func ParseAction(id string) (Action, bool) {
	for _, a := range AllActions() {
		if a.String() == id {
			return a, true
		}
	}
	return 0, false
}

// CommandActions is the subset of actions hosted content may invoke
// through the local command surface. Quitting and the pinned tray
// toggle stay native-only.
func CommandActions() []Action {
	return []Action{
		ActionFocusMain,
		ActionNewChat,
		ActionNewWindow,
		ActionOpenSettings,
		ActionReloadMain,
		ActionHistoryBack,
		ActionHistoryForward,
		ActionOpenConfigFile,
		ActionOpenConfigDir,
		ActionOpenDocs,
	}
}
