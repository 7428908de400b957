// Package api serves the localhost spectator and debug surface: match
// state over HTTP and WebSocket, Prometheus metrics and pprof. It is a
// read-only window onto the engine, never a control plane.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"quantum-harvest/internal/game"
)

// Server combines the HTTP router with the WebSocket hub.
type Server struct {
	engine      *game.Engine
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter

	broadcastInterval time.Duration
}

// NewServer creates the spectator server.
//
// Background workers do NOT start until Start() is called, so tests can
// construct the server and hit Router() without goroutines running.
func NewServer(engine *game.Engine) *Server {
	s := &Server{
		engine: engine,
		wsHub:  NewWebSocketHub(),
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Engine:      engine,
		RateLimiter: s.rateLimiter,
	})

	// The WebSocket route needs the hub instance, so it cannot live in
	// the pure router factory.
	s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.wsHub.HandleWebSocket(w, r)
	})

	return s
}

// SetBroadcastInterval overrides the spectator push cadence. Call before
// Start.
func (s *Server) SetBroadcastInterval(d time.Duration) {
	s.broadcastInterval = d
}

// Start runs the hub workers and blocks serving HTTP on addr. This is
// the only method that starts goroutines or opens listeners.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.engine, s.broadcastInterval)

	log.Printf("🌐 Spectator server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub, for pushing events from the match loop.
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Stop shuts down background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
