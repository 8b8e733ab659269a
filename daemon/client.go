package daemon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pguedes/gesticle/server"
)

const (
	DefaultServerAddress = "localhost:12000"

	clientTimeout = 10 * time.Second
)

// NormalizeAddress turns a listen address or bare port into a base URL
func NormalizeAddress(addr string) string {
	if addr == "" {
		addr = DefaultServerAddress
	}

	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}

	// if no colon, assume it's a bare port number
	if !strings.Contains(addr, ":") {
		if _, err := strconv.Atoi(addr); err == nil {
			addr = ":" + addr
		}
	}

	// if address starts with colon, prepend localhost
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	return "http://" + addr
}

// Call invokes a JSON-RPC method on the control server and returns its result
func Call(addr, method string, params interface{}) (json.RawMessage, error) {
	base := NormalizeAddress(addr)

	reqBody := struct {
		JSONRPC string      `json:"jsonrpc"`
		Method  string      `json:"method"`
		Params  interface{} `json:"params,omitempty"`
		ID      int         `json:"id"`
	}{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	client := &http.Client{Timeout: clientTimeout}
	req, err := http.NewRequest(http.MethodPost, base+"/rpc", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) || strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("%w on %s", ErrDaemonNotRunning, base)
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w on %s", ErrReloadTimeout, base)
		}
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned error: %s", resp.Status)
	}

	var rpcResp struct {
		Result json.RawMessage  `json:"result"`
		Error  *server.RPCError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// ReloadOverHTTP asks the control server to reload the configuration
func ReloadOverHTTP(addr string) error {
	_, err := Call(addr, server.MethodConfigReload, nil)
	return err
}

// ShutdownOverHTTP asks the control server to stop the daemon
func ShutdownOverHTTP(addr string) error {
	_, err := Call(addr, server.MethodServerShutdown, nil)
	return err
}
