package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/erraggy/oasnorm/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Map is an object node of a document tree.
type Map = map[string]any

// List is an array node of a document tree.
type List = []any

// SourceFormat represents the textual format a document was loaded from
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// DetectFormat determines the format of data, preferring the file extension of
// path and falling back to content sniffing. YAML is assumed when neither gives
// an answer.
func DetectFormat(data []byte, path string) SourceFormat {
	if f := detectFormatFromPath(path); f != SourceFormatUnknown {
		return f
	}
	if f := detectFormatFromContent(data); f != SourceFormatUnknown {
		return f
	}
	return SourceFormatYAML
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON starts with '{' or '[', YAML usually does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// Parse decodes data into an open document tree and reports the detected format.
// The path is used for format detection and error messages only.
func Parse(data []byte, path string) (any, SourceFormat, error) {
	format := DetectFormat(data, path)

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, format, newParseError(path, format, err)
	}
	return normalize(raw), format, nil
}

// ParseMap is like Parse but requires the document root to be an object.
func ParseMap(data []byte, path string) (Map, SourceFormat, error) {
	doc, format, err := Parse(data, path)
	if err != nil {
		return nil, format, err
	}
	m, ok := doc.(Map)
	if !ok {
		if doc == nil {
			return Map{}, format, nil
		}
		return nil, format, &oaserrors.ParseError{
			Path:    path,
			Format:  formatName(format),
			Message: fmt.Sprintf("document root must be an object, got %T", doc),
		}
	}
	return m, format, nil
}

func newParseError(path string, format SourceFormat, err error) error {
	pe := &oaserrors.ParseError{Path: path, Format: formatName(format), Cause: err}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		pe.Message = "unexpected node type"
	}
	return pe
}

// normalize converts map[any]any produced for non-string keys into Map,
// recursively, so consumers only ever see Map and List containers.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalize(child)
		}
		return val
	case map[any]any:
		m := make(Map, len(val))
		for k, child := range val {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range val {
			val[i] = normalize(child)
		}
		return val
	default:
		return v
	}
}

// Marshal encodes a document tree in the given format. Keys are sorted so the
// output is deterministic for a given tree. JSON output ends with a newline.
func Marshal(doc any, format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("document: marshaling to json: %w", err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("document: marshaling to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: marshaling to yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// AsMap returns v as a Map when it is an object node.
func AsMap(v any) (Map, bool) {
	m, ok := v.(Map)
	return m, ok
}

// AsList returns v as a List when it is an array node.
func AsList(v any) (List, bool) {
	l, ok := v.(List)
	return l, ok
}

// SortedKeys returns the keys of m in lexicographic order.
func SortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringSlice extracts the string elements of m[key], skipping non-strings.
// Returns nil when the key is absent or not an array.
func StringSlice(m Map, key string) []string {
	arr, ok := m[key].(List)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// ToList converts a string slice to a List for storing back into a tree.
func ToList(values []string) List {
	l := make(List, len(values))
	for i, v := range values {
		l[i] = v
	}
	return l
}

// formatName is the format recorded on parse errors; unknown is left blank.
func formatName(format SourceFormat) string {
	if format == SourceFormatUnknown {
		return ""
	}
	return string(format)
}
