// Package config manages Onyx Desktop's persisted runtime configuration.
// This file contains the Store, the process-wide shared configuration
// state accessed concurrently by every controller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

// BootstrapState is the configuration snapshot handed to the hosted web
// content when a page first loads.
type BootstrapState struct {
	ServerURL    string `json:"server_url"`
	ConfigExists bool   `json:"config_exists"`
}

// Store owns the process-wide configuration state. It is constructed
// once at startup and a handle passed to every controller; access is
// guarded by a reader/writer lock (many readers, single writer).
type Store struct {
	mu          sync.RWMutex
	cfg         Config
	initialized bool
	baseURL     string

	// path is resolved once at construction; empty when no user config
	// directory is resolvable (reads then always degrade to defaults
	// and saves fail with a persistence error).
	path string

	log zerolog.Logger

	watchMu   sync.Mutex
	watcher   *fsnotify.Watcher
	watchDone chan struct{}
}

// NewStore creates the configuration store and performs the initial
// load. Load failures never propagate; a fresh or corrupt installation
// starts on defaults with the initialized flag unset.
func NewStore(log zerolog.Logger) *Store {
	path := ""
	if dir, err := common.ConfigDir(); err == nil {
		path = filepath.Join(dir, common.ConfigFileName)
	} else {
		log.Warn().Err(err).Msg("no config directory resolvable, running on defaults")
	}
	return NewStoreAt(path, log)
}

// NewStoreAt creates a store bound to an explicit config file path.
// An empty path means no directory is resolvable: loads degrade to
// defaults and saves fail with a persistence error.
func NewStoreAt(path string, log zerolog.Logger) *Store {
	s := &Store{
		path: path,
		log:  log.With().Str("component", "config").Logger(),
	}

	cfg, existed := s.Load()
	s.cfg = cfg
	s.initialized = existed

	return s
}

// Load reads the persisted configuration from disk. It returns defaults
// and existed=false on any failure: unresolvable directory, absent
// file, unreadable file, or malformed content. It never fails the
// caller and does not create the file.
func (s *Store) Load() (Config, bool) {
	if s.path == "" {
		return Default(), false
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("config unreadable, using defaults")
		}
		return Default(), false
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("config malformed, using defaults")
		return Default(), false
	}

	cfg.sanitize()
	return cfg, true
}

// Save persists the given configuration atomically: the serialized
// form is written to a temporary file in the target directory and
// renamed into place, so a reader never observes a partial file.
func (s *Store) Save(cfg Config) error {
	if s.path == "" {
		return common.ErrNoConfigDir
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, common.ConfigFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return nil
}

// SetServerURL validates, normalizes, commits, and persists a new
// server URL in a single locked read-modify-write-persist sequence.
// Validation failures leave the stored configuration untouched. On a
// persistence failure the in-memory value is already updated, so a
// caller may retry the save without re-supplying input.
func (s *Store) SetServerURL(raw string) (string, error) {
	normalized, err := NormalizeServerURL(raw)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.ServerURL = normalized
	s.initialized = true

	if err := s.Save(s.cfg); err != nil {
		return "", err
	}

	s.log.Info().Str("server_url", normalized).Msg("server URL updated")
	return normalized, nil
}

// Reset replaces the configuration with defaults, persists, and marks
// the store initialized.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = Default()
	s.initialized = true

	if err := s.Save(s.cfg); err != nil {
		return err
	}

	s.log.Info().Msg("configuration reset to defaults")
	return nil
}

// Snapshot returns a copy of the current configuration. Multi-step
// operations use one snapshot instead of re-reading the store.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Initialized reports whether a config file has been observed to exist
// or has been explicitly written this process.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Bootstrap returns the state handed to the hosted web content.
func (s *Store) Bootstrap() BootstrapState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BootstrapState{
		ServerURL:    s.cfg.ServerURL,
		ConfigExists: s.initialized,
	}
}

// SetBaseURL records the base URL derived from the first successful
// page load. Only the first value sticks; SetBaseURL reports whether
// this call was the one that wrote it.
func (s *Store) SetBaseURL(u string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseURL != "" || u == "" {
		return false
	}
	s.baseURL = u
	return true
}

// BaseURL returns the captured base URL, if any.
func (s *Store) BaseURL() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL, s.baseURL != ""
}

// Path returns the resolved config file path, or "" when no config
// directory is resolvable.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the resolved config directory, or "" when unresolvable.
func (s *Store) Dir() string {
	if s.path == "" {
		return ""
	}
	return filepath.Dir(s.path)
}

// Watch starts an fsnotify watcher on the configuration directory and
// reloads the file after external edits (the file is user editable via
// the open-config-file command). Malformed edits are ignored; onChange
// fires only when the effective configuration actually changed.
func (s *Store) Watch(onChange func(Config)) error {
	if s.path == "" {
		return common.ErrNoConfigDir
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return common.WrapError(err, "failed to create config directory")
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watcher != nil {
		return nil
	}

	// The directory is watched rather than the file: editors and our
	// own atomic save replace the file by rename, which drops a plain
	// file watch.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return common.WrapError(err, "failed to create config watcher")
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return common.WrapError(err, "failed to watch config directory")
	}

	s.watcher = watcher
	s.watchDone = make(chan struct{})
	go s.watchLoop(watcher, s.watchDone, onChange)

	s.log.Debug().Str("path", s.path).Msg("config watcher started")
	return nil
}

// Close stops the config watcher, if running.
func (s *Store) Close() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watcher == nil {
		return
	}
	s.watcher.Close()
	<-s.watchDone
	s.watcher = nil
}

func (s *Store) watchLoop(watcher *fsnotify.Watcher, done chan struct{}, onChange func(Config)) {
	defer close(done)

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != common.ConfigFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire bursts of events per save; coalesce them.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(common.WatchDebounce, func() {
				s.reloadFromDisk(onChange)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// reloadFromDisk applies an externally edited file to the store. Our
// own saves also land here via the watcher; the equality check keeps
// them from echoing through onChange.
func (s *Store) reloadFromDisk(onChange func(Config)) {
	cfg, existed := s.Load()
	if !existed {
		return
	}

	s.mu.Lock()
	changed := cfg != s.cfg
	s.cfg = cfg
	s.initialized = true
	s.mu.Unlock()

	if !changed {
		return
	}

	s.log.Info().Str("server_url", cfg.ServerURL).Msg("configuration reloaded after external edit")
	if onChange != nil {
		onChange(cfg)
	}
}
