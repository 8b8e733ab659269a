package commands

import (
	"fmt"
	"strings"

	"github.com/pguedes/gesticle/configuration"
)

// AppsResponse lists the applications with their own settings
type AppsResponse struct {
	Apps []string `json:"apps"`
}

// AppsCommand lists the application namespaces in the configuration
func AppsCommand() *CommandResponse {
	r, err := requireResolver()
	if err != nil {
		return NewErrorResponse(err)
	}

	apps := r.Apps()
	if apps == nil {
		apps = []string{}
	}
	return NewSuccessResponse(AppsResponse{Apps: apps})
}

// ResolveRequest represents the parameters for resolving one setting
type ResolveRequest struct {
	Setting string `json:"setting"`
	App     string `json:"app,omitempty"`
}

// ResolveResponse describes how a setting resolved
type ResolveResponse struct {
	Setting   string              `json:"setting"`
	App       string              `json:"app,omitempty"`
	Key       string              `json:"key"`
	Value     string              `json:"value"`
	Scope     configuration.Scope `json:"scope"`
	Disabled  bool                `json:"disabled"`
	Specified bool                `json:"specified"`
}

// ResolveCommand resolves a setting with application inheritance
func ResolveCommand(req ResolveRequest) *CommandResponse {
	setting := strings.ToLower(strings.TrimSpace(req.Setting))
	if setting == "" {
		return NewErrorResponse(fmt.Errorf("setting is required"))
	}

	r, err := requireResolver()
	if err != nil {
		return NewErrorResponse(err)
	}

	res, ok := r.ResolveWithScope(setting, req.App)
	if !ok {
		return NewErrorResponse(fmt.Errorf("%w: %s", configuration.ErrSettingUnconfigured, setting))
	}

	return NewSuccessResponse(ResolveResponse{
		Setting:   setting,
		App:       req.App,
		Key:       res.Key,
		Value:     res.Value,
		Scope:     res.Scope,
		Disabled:  res.Value == "",
		Specified: req.App == "" || res.Scope == configuration.ScopeApp,
	})
}

// SettingsRequest represents the parameters for listing settings
type SettingsRequest struct {
	App string `json:"app,omitempty"`
}

// SettingsCommand lists every configurable gesture for an application, or
// the global scope when no application is given
func SettingsCommand(req SettingsRequest) *CommandResponse {
	r, err := requireResolver()
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(r.Settings(req.App))
}

// ReloadCommand re-reads the configuration file
func ReloadCommand() *CommandResponse {
	r, err := requireResolver()
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := r.Reload(); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"message":  "configuration reloaded",
		"path":     r.Path(),
		"settings": r.Snapshot().Len(),
	})
}

// PathCommand reports the configuration file in use
func PathCommand() *CommandResponse {
	r, err := requireResolver()
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"path": r.Path(),
		"apps": len(r.Apps()),
	})
}
