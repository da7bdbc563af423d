// Package server exposes expression evaluation over HTTP and websocket.
//
//	POST /evaluate  {"expression": "2+5*9/3^2"} → {"expression": ..., "result": 7, "text": "7.00"}
//	GET  /ws        one expression per text frame, one JSON reply per frame
//	GET  /healthz   liveness
//
// Every request is evaluated in isolation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"go.creack.net/pemdas"
)

// maxBodySize bounds the request body of /evaluate and each /ws message.
const maxBodySize = 64 << 10

// Config configures a Server.
type Config struct {
	Calculator  pemdas.Calculator
	Format      string // fmt verb for the text field, pemdas.DefaultFormat if empty.
	ReadTimeout time.Duration
	Verbose     bool
}

// Server evaluates expressions for remote clients.
type Server struct {
	cfg      Config
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// Request is the body of POST /evaluate.
type Request struct {
	Expression string `json:"expression"`
}

// Response is the reply to a single expression. Result is omitted when the
// value is not finite, Text always carries the formatted value.
type Response struct {
	Expression string     `json:"expression"`
	Result     *float64   `json:"result,omitempty"`
	Text       string     `json:"text,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes why an expression has no value.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// New returns a Server ready to be mounted with Handler.
func New(cfg Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %q: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Printf("Listening on %s.", ln.Addr())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// evaluate builds the reply for expression. ok is false for input errors.
func (s *Server) evaluate(expression string) (resp Response, ok bool) {
	resp.Expression = expression
	res, err := s.cfg.Calculator.Eval(expression)
	if err != nil {
		d, _ := pemdas.Inspect(err)
		resp.Error = &ErrorBody{Kind: d.Kind, Index: d.Index, Message: pemdas.Describe(expression, err)}
		if s.cfg.Verbose {
			log.Printf("Evaluate %q: %s.", expression, err)
		}
		return resp, false
	}
	if !math.IsInf(res.Value, 0) && !math.IsNaN(res.Value) {
		v := res.Value
		resp.Result = &v
	}
	resp.Text = res.Format(s.cfg.Format)
	return resp, true
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: &ErrorBody{
			Kind:    "BadRequest",
			Index:   pemdas.NoIndex,
			Message: fmt.Sprintf("invalid request body: %s", err),
		}})
		return
	}
	resp, ok := s.evaluate(req.Expression)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade: %s.", err)
		return
	}
	defer func() { _ = conn.Close() }() // Best effort.

	// The HTTP read timeout covers the handshake only.
	_ = conn.SetReadDeadline(time.Time{})
	conn.SetReadLimit(maxBodySize)
	if s.cfg.Verbose {
		log.Printf("Websocket connection from %s.", conn.RemoteAddr())
	}

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Websocket read: %s.", err)
			} else if s.cfg.Verbose {
				log.Printf("Websocket connection from %s closed.", conn.RemoteAddr())
			}
			return
		}
		var resp Response
		if kind != websocket.TextMessage {
			resp.Error = &ErrorBody{Kind: "BadRequest", Index: pemdas.NoIndex, Message: "expected a text frame"}
		} else {
			resp, _ = s.evaluate(string(payload))
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("Websocket write: %s.", err)
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Write response: %s.", err)
	}
}
