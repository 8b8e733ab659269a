package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pguedes/gesticle/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603

	// Server error: the method ran and failed
	ErrCodeServerError = -32000
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// RPCError is a JSON-RPC error object
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

func invalidParams(format string, args ...interface{}) *RPCError {
	return &RPCError{Code: ErrCodeInvalidParams, Message: "Invalid params", Data: fmt.Sprintf(format, args...)}
}

// Options configures the control server
type Options struct {
	EnableCORS bool

	// OnShutdown is called once when a client requests server.shutdown
	OnShutdown func()
}

// Server is the daemon's control surface: JSON-RPC over HTTP and websocket,
// plus a websocket feed of handled gestures
type Server struct {
	opts     Options
	hub      *Hub
	shutdown sync.Once
}

func New(opts Options) *Server {
	return &Server{opts: opts, hub: NewHub()}
}

// Hub returns the gesture feed; register it as a handler publisher
func (s *Server) Hub() *Hub {
	return s.hub
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler builds the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.opts.EnableCORS {
		r.Use(corsMiddleware)
	}

	r.Get("/", sendBanner)
	r.Post("/rpc", s.handleJSONRPC)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWebSocket(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// ListenAddress normalizes a listen address; a bare port listens on all interfaces
func ListenAddress(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return addr, nil
	}

	port, err := strconv.Atoi(addr)
	if err != nil {
		return "", fmt.Errorf("invalid port: %v", err)
	}
	return fmt.Sprintf(":%d", port), nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	addr, err := ListenAddress(addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Starting control server on http://%s...", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("control server failed: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop control server: %w", err)
		}
		utils.Verbose("control server stopped")
		return nil
	}
}

func (s *Server) requestShutdown() {
	s.shutdown.Do(func() {
		utils.Info("shutdown requested over JSON-RPC")
		if s.opts.OnShutdown != nil {
			go s.opts.OnShutdown()
		}
	})
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, &RPCError{Code: ErrCodeParseError, Message: "Parse error", Data: "expecting jsonrpc payload"})
		return
	}

	if rpcErr := validateRequest(req); rpcErr != nil {
		sendJSONRPCError(w, req.ID, rpcErr)
		return
	}

	utils.Info("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	result, rpcErr := s.call(req)
	if rpcErr != nil {
		sendJSONRPCError(w, req.ID, rpcErr)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func validateRequest(req JSONRPCRequest) *RPCError {
	if req.JSONRPC != "2.0" {
		return &RPCError{Code: ErrCodeInvalidRequest, Message: "Invalid Request", Data: "'jsonrpc' must be '2.0'"}
	}
	if req.ID == nil {
		return &RPCError{Code: ErrCodeInvalidRequest, Message: "Invalid Request", Data: "'id' field is required"}
	}
	if req.Method == "" {
		return &RPCError{Code: ErrCodeInvalidRequest, Message: "Invalid Request", Data: "'method' is required"}
	}
	return nil
}

// call runs a registered method, mapping failures onto JSON-RPC errors
func (s *Server) call(req JSONRPCRequest) (interface{}, *RPCError) {
	handler, exists := s.methods()[req.Method]
	if !exists {
		return nil, &RPCError{Code: ErrCodeMethodNotFound, Message: "Method not found", Data: fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	result, err := handler(req.Params)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return nil, rpcErr
		}
		utils.Warn("Error executing method %s: %v", req.Method, err)
		return nil, &RPCError{Code: ErrCodeServerError, Message: "Server error", Data: err.Error()}
	}

	return result, nil
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, rpcErr *RPCError) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error:   rpcErr,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "name": "gesticle"})
}
