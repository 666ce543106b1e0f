package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"
)

// Server wraps the HTTP server for the web frontend.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	hub        *LiveHub
}

// NewServer creates a server for handler. If dataDir is empty, file watching
// is disabled but API mutations are still published.
func NewServer(handler *Handler, dataDir string) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	hub := NewLiveHub(handler.Hello)
	mux.HandleFunc("GET /api/v1/ws", hub.ServeWS)
	handler.SetBroadcaster(hub)

	var watcher *FileWatcher
	if dataDir != "" {
		var err error
		watcher, err = NewFileWatcher(dataDir)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			// The handler reloads and then publishes store_change through the hub.
			watcher.Subscribe(handler)
		}
	}

	return &Server{
		httpServer: &http.Server{
			Handler:      Logging(Recover(Cors(mux))),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		hub:     hub,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on ln until Shutdown. A clean shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.startWatcher()
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) startWatcher() {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Start(); err != nil {
		log.Printf("Warning: failed to start file watcher: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}

// ClientCount returns the number of connected live-update clients.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}
