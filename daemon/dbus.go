package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/pguedes/gesticle/configuration"
	"github.com/pguedes/gesticle/utils"
)

const (
	BusName       = "io.github.pguedes.gesticle"
	ReloadPath    = dbus.ObjectPath("/actions/reload")
	ReloadIface   = "io.github.pguedes.gesticle"
	ReloadMethod  = "reload"
	ReloadTimeout = 5 * time.Second
)

type reloadHandler struct {
	target configuration.Reloader
}

func (h reloadHandler) reload() *dbus.Error {
	utils.Info("configuration reload requested over d-bus")
	if err := h.target.Reload(); err != nil {
		utils.Error("%v", err)
		return dbus.MakeFailedError(err)
	}
	return nil
}

// ReloadService answers reload requests on the session bus
type ReloadService struct {
	conn *dbus.Conn
}

// ServeReload claims the gesticle bus name on the session bus and exports
// the reload method. Requests are served on the bus connection's own
// goroutine until Close.
func ServeReload(target configuration.Reloader) (*ReloadService, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	svc, err := ServeReloadOn(conn, target)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return svc, nil
}

// ServeReloadOn is ServeReload over an existing connection
func ServeReloadOn(conn *dbus.Conn, target configuration.Reloader) (*ReloadService, error) {
	handler := reloadHandler{target: target}
	methods := map[string]interface{}{ReloadMethod: handler.reload}

	if err := conn.ExportMethodTable(methods, ReloadPath, ReloadIface); err != nil {
		return nil, fmt.Errorf("failed to export reload method: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to request bus name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, BusName)
	}

	utils.Verbose("serving %s.%s on %s", ReloadIface, ReloadMethod, ReloadPath)
	return &ReloadService{conn: conn}, nil
}

// Close releases the bus name and the connection
func (s *ReloadService) Close() error {
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		utils.Verbose("failed to release bus name: %v", err)
	}
	return s.conn.Close()
}

// RequestReload asks a running daemon to reload its configuration, waiting
// at most ReloadTimeout. There are no retries.
func RequestReload(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	return RequestReloadOn(ctx, conn)
}

// RequestReloadOn is RequestReload over an existing connection
func RequestReloadOn(ctx context.Context, conn *dbus.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, ReloadTimeout)
	defer cancel()

	var running bool
	err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, BusName).Store(&running)
	if err != nil {
		return classifyCallError(err)
	}
	if !running {
		return ErrDaemonNotRunning
	}

	call := conn.Object(BusName, ReloadPath).CallWithContext(ctx, ReloadIface+"."+ReloadMethod, 0)
	if call.Err != nil {
		return classifyCallError(call.Err)
	}
	return nil
}

func classifyCallError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrReloadTimeout
	}

	if errorName(err) == "org.freedesktop.DBus.Error.ServiceUnknown" {
		return ErrDaemonNotRunning
	}

	return fmt.Errorf("reload request failed: %w", err)
}

func errorName(err error) string {
	var value dbus.Error
	if errors.As(err, &value) {
		return value.Name
	}
	var ptr *dbus.Error
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Name
	}
	return ""
}
