// Package cli: this file contains the one-shot terminal commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
)

// CLI represents the command-line interface.
type CLI struct {
	store *config.Store
	out   io.Writer
	theme *theme
}

// New creates a new CLI instance over the given configuration store.
func New(store *config.Store) *CLI {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	return &CLI{
		store: store,
		out:   os.Stdout,
		theme: newTheme(styled),
	}
}

// ShowConfig prints the active configuration and where it came from.
func (c *CLI) ShowConfig() error {
	cfg := c.store.Snapshot()

	fmt.Fprintln(c.out, c.theme.Title.Render(common.AppName+" Desktop configuration"))
	fmt.Fprintln(c.out)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintln(w, "---\t-----")
	fmt.Fprintf(w, "server_url\t%s\n", cfg.ServerURL)
	fmt.Fprintf(w, "window_title\t%s\n", cfg.WindowTitle)
	fmt.Fprintf(w, "config_file\t%s\n", c.store.Path())

	state := "not created (using defaults)"
	if common.FileExists(c.store.Path()) {
		state = "present"
	}
	fmt.Fprintf(w, "file_state\t%s\n", state)
	w.Flush()
	return nil
}

// ConfigPath prints the configuration file path, nothing else. Meant
// for shell substitution.
func (c *CLI) ConfigPath() error {
	fmt.Fprintln(c.out, c.store.Path())
	return nil
}

// SetServerURL validates, normalizes, and persists a new server URL.
func (c *CLI) SetServerURL(raw string) error {
	normalized, err := c.store.SetServerURL(raw)
	if err != nil {
		return fmt.Errorf("failed to set server URL: %w", err)
	}
	fmt.Fprintf(c.out, "%s Server URL set to %s\n",
		c.theme.Success.Render("✓"), c.theme.Value.Render(normalized))
	return nil
}

// Reset restores the built-in defaults and persists them.
func (c *CLI) Reset() error {
	if err := c.store.Reset(); err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}
	fmt.Fprintf(c.out, "%s Configuration reset to defaults (%s)\n",
		c.theme.Success.Render("✓"), common.DefaultServerURL)
	return nil
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Onyx Desktop

Usage:
  onyx-desktop [OPTIONS]

Options:
  --version              Show version and exit
  --verbose              Enable verbose logging
  --show-config          Print the active configuration
  --config-path          Print the configuration file path
  --set-server-url URL   Set the server URL and exit
  --edit                 Edit the server URL interactively
  --reset-config         Restore the built-in defaults
  --help                 Show this help message

Examples:
  onyx-desktop --show-config
  onyx-desktop --set-server-url https://onyx.internal.example.com
  onyx-desktop --edit

Notes:
  - Run without options to launch the app
  - The server URL must start with http:// or https://`)
}
