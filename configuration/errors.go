package configuration

import "errors"

var (
	// ErrConfigMissing indicates no configuration document could be found at startup
	ErrConfigMissing = errors.New("configuration file not found")

	// ErrReloadFailure indicates a reload could not read or parse the document;
	// the previous document stays in effect
	ErrReloadFailure = errors.New("configuration reload failed")

	// ErrSettingUnconfigured indicates a setting resolved to nothing at any layer
	ErrSettingUnconfigured = errors.New("setting not configured")
)
