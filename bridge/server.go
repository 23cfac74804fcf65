// Package bridge: this file contains the loopback HTTP server and its
// request handlers.
package bridge

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
	"github.com/onyx-dot-app/onyx-desktop/shell"
)

// TokenHeader carries the per-process bridge token on API requests.
const TokenHeader = "X-Onyx-Token"

// Server is the loopback HTTP endpoint hosted web content talks to.
type Server struct {
	ln    net.Listener
	srv   *http.Server
	base  string
	token string
	log   zerolog.Logger
}

// New binds the loopback listener and mints the process token.
// Handlers are not attached until Serve is called, but BaseURL and
// Token are valid immediately so the injected script can be rendered
// before the shell exists.
func New(log zerolog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, common.WrapError(err, "failed to bind bridge listener")
	}
	return &Server{
		ln:    ln,
		base:  "http://" + ln.Addr().String(),
		token: uuid.NewString(),
		log:   log.With().Str("component", "bridge").Logger(),
	}, nil
}

// BaseURL returns the http://127.0.0.1:<port> address of the server.
func (b *Server) BaseURL() string {
	return b.base
}

// Token returns the per-process bridge token.
func (b *Server) Token() string {
	return b.token
}

// SettingsURL returns the address of the built-in settings page,
// including the token the page needs for its API calls.
func (b *Server) SettingsURL() string {
	return b.base + "/settings?token=" + url.QueryEscape(b.token)
}

// Serve attaches the request handlers and starts serving in the
// background.
func (b *Server) Serve(router *shell.Router, store *config.Store, windows *shell.WindowManager) {
	mux := http.NewServeMux()

	// The injected script runs on the deployment's origin, so every
	// response carries permissive CORS headers and preflights are
	// answered before the token check.
	withCORS := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+TokenHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h(w, r)
		}
	}

	withToken := func(h http.HandlerFunc) http.HandlerFunc {
		return withCORS(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(TokenHeader) != b.token {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			h(w, r)
		})
	}

	mux.HandleFunc("/api/bootstrap", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(store.Bootstrap())
	}))

	mux.HandleFunc("/api/action", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(io.LimitReader(r.Body, common.BridgeMaxBodySize))
		var in actionRequest
		if err := json.Unmarshal(body, &in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		a, ok := shell.ParseAction(in.ID)
		if !ok {
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}
		if !commandable(a) {
			http.Error(w, "action not allowed", http.StatusForbidden)
			return
		}
		b.log.Debug().Str("action", a.String()).Msg("dispatching bridge action")
		router.Dispatch(a)
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("/api/config/server-url", withToken(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(serverURLResponse{ServerURL: store.Snapshot().ServerURL})

		case http.MethodPost:
			body, _ := io.ReadAll(io.LimitReader(r.Body, common.BridgeMaxBodySize))
			var in serverURLRequest
			if err := json.Unmarshal(body, &in); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			normalized, err := store.SetServerURL(in.ServerURL)
			if errors.Is(err, common.ErrInvalidServerURL) {
				http.Error(w, "server url must start with http:// or https://", http.StatusBadRequest)
				return
			}
			if err != nil {
				http.Error(w, "cannot save", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(serverURLResponse{ServerURL: normalized})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/config/path", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(configPathResponse{Path: store.Path()})
	}))

	mux.HandleFunc("/api/config/reset", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := store.Reset(); err != nil {
			http.Error(w, "cannot save", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(serverURLResponse{ServerURL: store.Snapshot().ServerURL})
	}))

	mux.HandleFunc("/api/page-loaded", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(io.LimitReader(r.Body, common.BridgeMaxBodySize))
		var in windowRequest
		if err := json.Unmarshal(body, &in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if in.Window == "" {
			http.Error(w, "window required", http.StatusBadRequest)
			return
		}
		windows.HandlePageLoad(in.Window, in.URL)
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("/api/navigate", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(io.LimitReader(r.Body, common.BridgeMaxBodySize))
		var in navigateRequest
		if err := json.Unmarshal(body, &in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := shell.ValidatePath(in.Path); err != nil {
			http.Error(w, "path must be relative", http.StatusBadRequest)
			return
		}
		windows.NavigateMain(in.Path)
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("/api/window/drag", withToken(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(io.LimitReader(r.Body, common.BridgeMaxBodySize))
		var in windowRequest
		if err := json.Unmarshal(body, &in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if in.Window == "" {
			http.Error(w, "window required", http.StatusBadRequest)
			return
		}
		windows.StartDrag(in.Window)
		w.WriteHeader(http.StatusOK)
	}))

	// The settings page is loaded by window navigation, which cannot
	// set headers, so it authenticates with a query parameter instead.
	mux.HandleFunc("/settings", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("token") != b.token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, renderSettingsPage(store.Bootstrap(), b.token))
	}))

	b.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: common.BridgeReadHeaderTimeout,
	}

	go func() {
		if err := b.srv.Serve(b.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.log.Error().Err(err).Msg("bridge server stopped")
		}
	}()

	b.log.Info().Str("addr", b.base).Msg("bridge listening")
}

// Close shuts the server down and releases the listener.
func (b *Server) Close() {
	if b.srv != nil {
		_ = b.srv.Close()
		return
	}
	_ = b.ln.Close()
}

func commandable(a shell.Action) bool {
	for _, c := range shell.CommandActions() {
		if c == a {
			return true
		}
	}
	return false
}

type actionRequest struct {
	ID string `json:"id"`
}

type serverURLRequest struct {
	ServerURL string `json:"server_url"`
}

type serverURLResponse struct {
	ServerURL string `json:"server_url"`
}

type windowRequest struct {
	Window string `json:"window"`
	URL    string `json:"url,omitempty"`
}

type navigateRequest struct {
	Path string `json:"path"`
}

type configPathResponse struct {
	Path string `json:"path"`
}
