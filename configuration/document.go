package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a configuration document
type Format string

const (
	FormatTOML Format = "toml"
	FormatINI  Format = "ini"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from a file extension.
// Unknown extensions are read as TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".conf":
		return FormatINI
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Document is an immutable, flattened view of a layered configuration file.
// Keys are lowercase dotted paths such as "firefox.swipe.up.3".
type Document struct {
	values map[string]string
	roots  []string
}

// NewDocument flattens a nested tree as decoded from TOML or YAML
func NewDocument(tree map[string]any) *Document {
	values := make(map[string]string)
	rootSet := make(map[string]bool)

	for key, val := range tree {
		key = normalizeKey(key)
		rootSet[key] = true
		flatten(key, val, values)
	}

	return &Document{values: values, roots: sortedKeys(rootSet)}
}

// FromValues builds a document from already flattened dotted keys
func FromValues(flat map[string]string) *Document {
	values := make(map[string]string, len(flat))
	rootSet := make(map[string]bool)

	for key, val := range flat {
		key = normalizeKey(key)
		values[key] = val
		root, _, _ := strings.Cut(key, ".")
		rootSet[root] = true
	}

	return &Document{values: values, roots: sortedKeys(rootSet)}
}

// Get returns the value stored verbatim under key
func (d *Document) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	val, ok := d.values[normalizeKey(key)]
	return val, ok
}

// Roots returns the sorted top-level keys of the document
func (d *Document) Roots() []string {
	if d == nil {
		return nil
	}
	roots := make([]string, len(d.roots))
	copy(roots, d.roots)
	return roots
}

// Keys returns every flattened key, sorted
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of flattened keys
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// ParseDocument decodes raw configuration data of the given format
func ParseDocument(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatINI:
		return parseINI(data)
	case FormatYAML:
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		return NewDocument(tree), nil
	case FormatTOML, "":
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
		return NewDocument(tree), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}
}

// LoadDocument reads and parses the document at path
func LoadDocument(path string) (*Document, error) {
	// #nosec G304 - reading the user's configuration file is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := ParseDocument(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// parseINI maps each section name onto a key prefix, so that
// [firefox.swipe.up] with "3 = ctrl+y" becomes firefox.swipe.up.3
func parseINI(data []byte) (*Document, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ini: %w", err)
	}

	tree := make(map[string]any)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name()
			ensureTable(tree, prefix)
		}
		for _, key := range section.Keys() {
			path := key.Name()
			if prefix != "" {
				path = prefix + "." + path
			}
			setByPath(tree, path, key.String())
		}
	}

	return NewDocument(tree), nil
}

func flatten(prefix string, val any, out map[string]string) {
	switch v := val.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(prefix+"."+normalizeKey(key), child, out)
		}
	case map[any]any:
		for key, child := range v {
			flatten(prefix+"."+normalizeKey(fmt.Sprint(key)), child, out)
		}
	default:
		out[prefix] = renderScalar(v)
	}
}

func renderScalar(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderScalar(item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}

// setByPath sets a value in a nested map using a dot-separated path,
// creating intermediate tables as needed
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := ensureTable(data, strings.Join(parts[:len(parts)-1], "."))
	current[parts[len(parts)-1]] = value
}

func ensureTable(data map[string]any, path string) map[string]any {
	current := data
	if path == "" {
		return current
	}
	for _, part := range strings.Split(path, ".") {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	return current
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
