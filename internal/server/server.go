// Package server is the WebSocket transport for the assistant. It accepts
// connections on /ws, builds one session per connection and runs a strict
// read-handle-write loop, so each session processes messages one at a time
// and responses come back in arrival order.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler processes one inbound message and returns the response text.
// The assistant dispatcher satisfies this.
type Handler interface {
	Handle(ctx context.Context, message string) string
}

// SessionFactory builds a fresh Handler for each accepted connection. The
// returned Handler is used by a single goroutine only.
type SessionFactory func(sessionID string) Handler

// frame is the outbound wire format: one frame per inbound message.
type frame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

const (
	frameResponse = "response"
	frameError    = "error"

	// errorContent is the last-resort reply when handling fails outside
	// the dispatcher's own containment.
	errorContent = "An error occurred"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Server serves the assistant over WebSocket.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	factory         SessionFactory
	logger          *zap.Logger
	upgrader        websocket.Upgrader
}

// New creates a Server. factory must not be nil.
func New(cfg Config, factory SessionFactory, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Server{
		addr:            cfg.Addr,
		shutdownTimeout: timeout,
		factory:         factory,
		logger:          logger,
		upgrader: websocket.Upgrader{
			// Clients connect from arbitrary origins; there is no
			// cookie-based auth to protect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: /ws for sessions, /healthz for probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", s.addr))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// handleWS upgrades the connection and runs the session loop. Reads are
// sequential: a new message is not read until the previous response has
// been written, which guarantees per-session ordering.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sessionID := uuid.NewString()
	logger := s.logger.With(zap.String("session", sessionID))
	sess := s.factory(sessionID)

	logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))
	defer func() {
		_ = conn.Close()
		logger.Info("client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", zap.Error(err))
			}
			return
		}

		resp := s.process(r.Context(), sess, string(data), logger)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("write failed", zap.Error(err))
			return
		}
	}
}

// process runs one message through the session handler. The dispatcher is
// designed never to fail outward; the recover here is the defensive outer
// boundary that turns anything unexpected into an error frame instead of
// killing the session.
func (s *Server) process(ctx context.Context, sess Handler, message string, logger *zap.Logger) (f frame) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("message handling panicked", zap.Any("panic", r))
			f = frame{Type: frameError, Content: errorContent}
		}
	}()

	start := time.Now()
	content := sess.Handle(ctx, message)
	logger.Debug("message handled", zap.Duration("took", time.Since(start)))

	return frame{Type: frameResponse, Content: content}
}
