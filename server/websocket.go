package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pguedes/gesticle/utils"
)

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := newUpgrader(s.opts.EnableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// subscriptions outlive the server's request timeouts
	_ = conn.NetConn().SetDeadline(time.Time{})

	wsConn := &wsConnection{conn: conn}
	var sub *subscriber
	defer func() {
		if sub != nil {
			s.hub.unsubscribe(sub)
		}
	}()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// connection closed or error
			utils.Verbose("WebSocket connection closed: %v", err)
			break
		}

		if messageType != websocket.TextMessage {
			_ = wsConn.sendError(nil, &RPCError{Code: ErrCodeInvalidRequest, Message: "Invalid Request", Data: "only text messages accepted for requests"})
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(message, &req); err != nil {
			_ = wsConn.sendError(nil, &RPCError{Code: ErrCodeParseError, Message: "Parse error", Data: "expecting jsonrpc payload"})
			continue
		}

		if rpcErr := validateRequest(req); rpcErr != nil {
			_ = wsConn.sendError(req.ID, rpcErr)
			continue
		}

		utils.Info("WebSocket Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

		if req.Method == MethodGesturesSubscribe {
			if sub == nil {
				var ok bool
				if sub, ok = s.hub.subscribe(wsConn); !ok {
					_ = wsConn.sendError(req.ID, &RPCError{Code: ErrCodeServerError, Message: "Server error", Data: "server is shutting down"})
					continue
				}
			}
			_ = wsConn.sendResponse(req.ID, okResponse)
			continue
		}

		result, rpcErr := s.call(req)
		if rpcErr != nil {
			_ = wsConn.sendError(req.ID, rpcErr)
			continue
		}
		_ = wsConn.sendResponse(req.ID, result)
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func (wsc *wsConnection) sendResponse(id interface{}, result interface{}) error {
	return wsc.sendJSON(JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	})
}

func (wsc *wsConnection) sendError(id interface{}, rpcErr *RPCError) error {
	return wsc.sendJSON(JSONRPCResponse{
		JSONRPC: "2.0",
		Error:   rpcErr,
		ID:      id,
	})
}

// sendNotification sends a JSON-RPC notification, a request without an id
func (wsc *wsConnection) sendNotification(method string, params interface{}) error {
	return wsc.sendJSON(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}
