package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pguedes/gesticle/configuration"
	"github.com/pguedes/gesticle/dispatch"
	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/utils"
)

// SettingResolver resolves a gesture setting for an application
type SettingResolver interface {
	Resolve(setting, app string) (string, bool)
}

// GestureHandler maps recognized gestures onto configured actions
type GestureHandler struct {
	resolver   SettingResolver
	dispatcher dispatch.Dispatcher
	apps       dispatch.AppContext
	publisher  Publisher
}

// NewGestureHandler creates a handler. apps and publisher may be nil.
func NewGestureHandler(resolver SettingResolver, dispatcher dispatch.Dispatcher, apps dispatch.AppContext, publisher Publisher) *GestureHandler {
	if apps == nil {
		apps = dispatch.NoAppContext{}
	}
	return &GestureHandler{
		resolver:   resolver,
		dispatcher: dispatcher,
		apps:       apps,
		publisher:  publisher,
	}
}

// Handle resolves and dispatches the action for g. Failures are logged and
// recorded, never returned; the caller keeps processing gestures.
func (h *GestureHandler) Handle(ctx context.Context, g gestures.Gesture) Record {
	app, _ := h.apps.CurrentApp(ctx)
	rec := newRecord(g, app)

	action, ok := h.resolver.Resolve(rec.Setting, app)
	switch {
	case !ok:
		utils.Warn("gesture not configured: %s", g)
		rec.Outcome = OutcomeUnconfigured
		rec.Error = configuration.ErrSettingUnconfigured.Error()

	case action == "":
		utils.Info("skipping gesture due to no action: %s", g)
		rec.Outcome = OutcomeDisabled

	default:
		rec.Action = action
		if err := h.dispatcher.Dispatch(ctx, action); err != nil {
			utils.WithFields(logrus.Fields{
				"setting": rec.Setting,
				"app":     app,
				"action":  action,
			}).Errorf("failed to handle %s: %v", g, err)
			rec.Outcome = OutcomeFailed
			rec.Error = err.Error()
		} else {
			utils.Verbose("handled %s with %q (app: %q)", g, action, app)
			rec.Outcome = OutcomeDispatched
		}
	}

	if h.publisher != nil {
		h.publisher.Publish(rec)
	}
	return rec
}
