// Package main provides the entry point for Onyx Desktop, the native
// shell around a hosted Onyx deployment. The shell owns window
// lifecycle, the system tray, global shortcuts, the application menu,
// and the persisted configuration; everything else is the web
// application itself.
//
// Features:
//   - Configurable server URL with safe fallbacks
//   - Multi-window support with a distinguished main window
//   - System tray with quick actions
//   - OS-global keyboard shortcuts
//   - Command-line interface for configuration management
//
// Usage:
//
//	onyx-desktop [options]
//
// Environment:
//
//	ONYX_LOG_LEVEL and ONYX_LOG_FORMAT tune logging; see the logging
//	package.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/bridge"
	"github.com/onyx-dot-app/onyx-desktop/cli"
	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
	"github.com/onyx-dot-app/onyx-desktop/host"
	"github.com/onyx-dot-app/onyx-desktop/logging"
	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	showConfig   = flag.Bool("show-config", false, "Print the active configuration")
	configPath   = flag.Bool("config-path", false, "Print the configuration file path")
	resetConfig  = flag.Bool("reset-config", false, "Restore the built-in defaults")
	setServerURL = flag.String("set-server-url", "", "Set the server URL and exit")
	editConfig   = flag.Bool("edit", false, "Edit the server URL interactively")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s Desktop v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	log := logging.NewFromEnv()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	// Check if any CLI mode flag is set
	if *showConfig || *configPath || *resetConfig || *setServerURL != "" || *editConfig {
		runCLI(log)
		return
	}

	runApp(log)
}

// runCLI handles command-line interface operations.
func runCLI(log zerolog.Logger) {
	store := config.NewStore(log)
	app := cli.New(store)

	var cliErr error

	switch {
	case *showConfig:
		cliErr = app.ShowConfig()
	case *configPath:
		cliErr = app.ConfigPath()
	case *setServerURL != "":
		cliErr = app.SetServerURL(*setServerURL)
	case *editConfig:
		cliErr = app.Edit()
	case *resetConfig:
		cliErr = app.Reset()
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}

// runApp builds the desktop shell and blocks in the host run loop
// until the user quits. A component that fails to come up is logged
// and skipped; the app starts with whatever works.
func runApp(log zerolog.Logger) {
	log.Info().Str("version", appVersion).Msg("starting " + common.AppName + " Desktop")

	store := config.NewStore(log)
	if !store.Initialized() {
		log.Info().Msg("no configuration file found, using defaults")
	}

	srv, err := bridge.New(log)
	if err != nil {
		log.Error().Err(err).Msg("bridge unavailable, running without page integration")
	}

	wailsHost := host.NewWailsHost(log)

	opts := shell.Options{
		Host:         wailsHost,
		Store:        store,
		Capabilities: shell.DetectCapabilities(),
		Registrar:    host.NewHotkeyRegistrar(log),
		Opener:       host.NewBrowserOpener(log),
		Logger:       log,
	}
	if srv != nil {
		opts.BridgeURL = srv.BaseURL()
		opts.BridgeToken = srv.Token()
		opts.SettingsFallback = srv.SettingsURL()
	}

	sh := shell.New(opts)
	if srv != nil {
		srv.Serve(sh.Router(), store, sh.Windows())
		defer srv.Close()
	}

	setupSignalHandler(sh.Quit, log)

	sh.Setup()
	sh.StartTray()

	if err := wailsHost.Run(); err != nil {
		log.Error().Err(err).Msg("host run loop failed")
		os.Exit(1)
	}
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
func setupSignalHandler(quit func(), log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		quit()
	}()
}
