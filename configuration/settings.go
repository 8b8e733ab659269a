package configuration

import "github.com/pguedes/gesticle/gestures"

// Setting is one configurable gesture as seen from a given scope
type Setting struct {
	Config    string `json:"config"`
	Direction string `json:"direction"`
	Category  string `json:"category"`
	App       string `json:"app,omitempty"`
	Action    string `json:"action,omitempty"`
	Inherited string `json:"inherited,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// Specified reports whether the scope carries its own value for the setting
func (s Setting) Specified() bool {
	return s.Action != "" || !s.Enabled
}

// Settings lists every configurable gesture for app, or for the global scope
// when app is empty. Action is filled only when the scope itself specifies a
// value; Inherited always holds the global action.
func (r *Resolver) Settings(app string) []Setting {
	// every row is read from the same document, even while a reload lands
	doc := r.Snapshot()
	app = normalizeKey(app)
	all := gestures.AllGestures()
	settings := make([]Setting, 0, len(all))

	for _, g := range all {
		key := g.SettingKey()
		category := g.Category()
		if app != "" {
			category += " in " + app
		}

		s := Setting{
			Config:    key,
			Direction: g.Direction.Title(),
			Category:  category,
			App:       app,
			Enabled:   true,
		}
		if val, ok := doc.Get(KeyForApp(key, app)); ok {
			s.Action = val
			s.Enabled = val != ""
		}
		if val, ok := doc.Get(key); ok {
			s.Inherited = val
		}

		settings = append(settings, s)
	}

	return settings
}
