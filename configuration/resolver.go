package configuration

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/utils"
)

// reservedPrefixes are the top-level keys that hold global settings; every
// other top-level key is an application namespace
var reservedPrefixes = map[string]bool{
	"swipe":    true,
	"rotation": true,
	"pinch":    true,
	"gesture":  true,
}

const (
	PinchInTriggerKey  = "gesture.trigger.pinch.in.scale"
	PinchOutTriggerKey = "gesture.trigger.pinch.out.scale"
)

// Scope tells which layer a resolved value came from
type Scope string

const (
	ScopeApp    Scope = "app"
	ScopeGlobal Scope = "global"
)

// Resolution is the result of resolving a setting with inheritance
type Resolution struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Scope Scope  `json:"scope"`
}

// LoaderFunc produces a fresh document, typically by reading the backing file
type LoaderFunc func() (*Document, error)

// Resolver resolves gesture settings against the current document.
// Readers use an immutable snapshot and never block; Reload swaps in a fully
// built replacement.
type Resolver struct {
	path   string
	load   LoaderFunc
	doc    atomic.Pointer[Document]
	reload sync.Mutex
}

// NewResolver loads the document at path. A missing file is fatal and is
// reported as ErrConfigMissing.
func NewResolver(path string) (*Resolver, error) {
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
	}

	r, err := NewResolverWithLoader(func() (*Document, error) {
		return LoadDocument(path)
	})
	if err != nil {
		return nil, err
	}
	r.path = path

	utils.Info("loaded configuration from %s (%d settings)", path, r.Snapshot().Len())
	return r, nil
}

// NewResolverWithLoader creates a resolver around an arbitrary loader
func NewResolverWithLoader(load LoaderFunc) (*Resolver, error) {
	doc, err := load()
	if err != nil {
		return nil, err
	}

	r := &Resolver{load: load}
	r.doc.Store(doc)
	return r, nil
}

// NewStaticResolver creates a resolver over a fixed document; Reload keeps it
func NewStaticResolver(doc *Document) *Resolver {
	r := &Resolver{load: func() (*Document, error) { return doc, nil }}
	r.doc.Store(doc)
	return r
}

// Path returns the backing file, empty for resolvers not backed by a file
func (r *Resolver) Path() string {
	return r.path
}

// Snapshot returns the document currently in effect
func (r *Resolver) Snapshot() *Document {
	return r.doc.Load()
}

// Reload re-reads the document and atomically replaces the current one.
// On failure the previous document is kept.
func (r *Resolver) Reload() error {
	r.reload.Lock()
	defer r.reload.Unlock()

	doc, err := r.load()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReloadFailure, err)
	}

	r.doc.Store(doc)
	utils.Info("configuration reloaded (%d settings)", doc.Len())
	return nil
}

// KeyForApp returns the key a setting has inside an application namespace
func KeyForApp(setting, app string) string {
	if app == "" {
		return setting
	}
	return app + "." + setting
}

// Resolve returns the value for setting, preferring the application
// override and falling back to the global key. An empty app means no
// application context.
func (r *Resolver) Resolve(setting, app string) (string, bool) {
	res, ok := r.ResolveWithScope(setting, app)
	return res.Value, ok
}

// ResolveWithScope is Resolve that also reports which layer answered
func (r *Resolver) ResolveWithScope(setting, app string) (Resolution, bool) {
	doc := r.Snapshot()

	if app != "" {
		key := KeyForApp(setting, normalizeKey(app))
		if val, ok := doc.Get(key); ok {
			utils.Verbose("getting setting: %q = %q", key, val)
			return Resolution{Key: key, Value: val, Scope: ScopeApp}, true
		}
	}

	val, ok := doc.Get(setting)
	utils.Verbose("getting setting: %q = %q (found: %t)", setting, val, ok)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Key: setting, Value: val, Scope: ScopeGlobal}, true
}

// Action returns a runnable action for setting. Disabled (empty) values and
// unconfigured settings both yield false.
func (r *Resolver) Action(setting, app string) (string, bool) {
	val, ok := r.Resolve(setting, app)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func (r *Resolver) lookupNoInheritance(setting, app string) (string, bool) {
	return r.Snapshot().Get(KeyForApp(setting, normalizeKey(app)))
}

// IsSpecified reports whether setting exists verbatim in the given scope,
// without falling back to the global value
func (r *Resolver) IsSpecified(setting, app string) bool {
	_, ok := r.lookupNoInheritance(setting, app)
	return ok
}

// IsDisabled reports whether setting is explicitly set to the empty string
// in the given scope
func (r *Resolver) IsDisabled(setting, app string) bool {
	val, ok := r.lookupNoInheritance(setting, app)
	return ok && val == ""
}

// Apps lists the application namespaces in the document, sorted
func (r *Resolver) Apps() []string {
	var apps []string
	for _, root := range r.Snapshot().Roots() {
		if !reservedPrefixes[root] {
			apps = append(apps, root)
		}
	}
	sort.Strings(apps)
	return apps
}

// Float reads a numeric setting
func (r *Resolver) Float(key string) (float64, bool) {
	val, ok := r.Snapshot().Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		utils.Warn("setting %s is not a number: %q", key, val)
		return 0, false
	}
	return f, true
}

// Triggers returns the pinch trigger thresholds, zero when unset
func (r *Resolver) Triggers() gestures.Triggers {
	in, _ := r.Float(PinchInTriggerKey)
	out, _ := r.Float(PinchOutTriggerKey)
	return gestures.Triggers{PinchIn: in, PinchOut: out}
}
