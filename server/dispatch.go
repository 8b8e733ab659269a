package server

import (
	"encoding/json"
	"fmt"

	"github.com/pguedes/gesticle/commands"
)

const (
	MethodConfigReload      = "config.reload"
	MethodConfigApps        = "config.apps"
	MethodConfigResolve     = "config.resolve"
	MethodConfigSettings    = "config.settings"
	MethodConfigPath        = "config.path"
	MethodGesturesRecent    = "gestures.recent"
	MethodServerShutdown    = "server.shutdown"
	MethodGesturesSubscribe = "gestures.subscribe"

	NotificationGestureHandled = "gestures.handled"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// methods returns the registry of method names to handler functions,
// shared by the HTTP and websocket transports
func (s *Server) methods() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		MethodConfigReload:   handleConfigReload,
		MethodConfigApps:     handleConfigApps,
		MethodConfigResolve:  handleConfigResolve,
		MethodConfigSettings: handleConfigSettings,
		MethodConfigPath:     handleConfigPath,
		MethodGesturesRecent: handleGesturesRecent,
		MethodServerShutdown: s.handleServerShutdown,
	}
}

// Execute dispatches a method call using the registry
func (s *Server) Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := s.methods()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

func responseData(response *commands.CommandResponse) (interface{}, error) {
	if response.IsError() {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

// decodeParams unmarshals optional params; absent params leave v untouched
func decodeParams(params json.RawMessage, v interface{}, fields string) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return invalidParams("%v. Expected fields: %s", err, fields)
	}
	return nil
}

func handleConfigReload(params json.RawMessage) (interface{}, error) {
	return responseData(commands.ReloadCommand())
}

func handleConfigApps(params json.RawMessage) (interface{}, error) {
	return responseData(commands.AppsCommand())
}

func handleConfigResolve(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: setting, app")
	}

	var req commands.ResolveRequest
	if err := decodeParams(params, &req, "setting, app"); err != nil {
		return nil, err
	}
	if req.Setting == "" {
		return nil, invalidParams("'setting' is required")
	}

	return responseData(commands.ResolveCommand(req))
}

func handleConfigSettings(params json.RawMessage) (interface{}, error) {
	var req commands.SettingsRequest
	if err := decodeParams(params, &req, "app"); err != nil {
		return nil, err
	}

	return responseData(commands.SettingsCommand(req))
}

func handleConfigPath(params json.RawMessage) (interface{}, error) {
	return responseData(commands.PathCommand())
}

func handleGesturesRecent(params json.RawMessage) (interface{}, error) {
	var req commands.RecentRequest
	if err := decodeParams(params, &req, "limit"); err != nil {
		return nil, err
	}

	return responseData(commands.RecentCommand(req))
}

func (s *Server) handleServerShutdown(params json.RawMessage) (interface{}, error) {
	s.requestShutdown()
	return okResponse, nil
}
