// Package structured turns an arbitrary response value into a generic
// JSON-like structure and renders it for display.
//
// Conversion tries a fixed, ranked list of variants and stops at the first
// that succeeds:
//
//  1. Dumper: the value dumps itself to a plain structure
//  2. MapConverter: the value converts itself to a map
//  3. the value already is a map[string]any
//  4. the value's text parses as JSON
//
// When none succeeds the result is opaque and carries only the value's text.
package structured

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Dumper is implemented by values that can dump themselves to a plain structure.
type Dumper interface {
	Dump() (any, error)
}

// MapConverter is implemented by values that can convert themselves to a map.
type MapConverter interface {
	ToMap() (map[string]any, error)
}

// Kind tags a Result.
type Kind int

const (
	// KindNone means there was no value at all.
	KindNone Kind = iota
	// KindStructured means Value holds a generic structure.
	KindStructured
	// KindOpaque means no structured form was found; only Text is meaningful.
	KindOpaque
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStructured:
		return "structured"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variant names the conversion that produced a structured Result.
type Variant string

// Conversion variants in the order they are tried.
const (
	VariantDump    Variant = "dump"
	VariantToMap   Variant = "to_map"
	VariantMapping Variant = "mapping"
	VariantText    Variant = "text"
)

// Result is the outcome of Normalize.
type Result struct {
	Kind Kind
	// Value is the structure for KindStructured, nil otherwise.
	Value any
	// Via is the variant that produced Value.
	Via Variant
	// Text is the value's raw textual representation.
	Text string
}

// Structured reports whether a structured form was obtained.
func (r Result) Structured() bool {
	return r.Kind == KindStructured
}

// Normalize converts v using the first variant that succeeds. A variant that
// fails, or yields nil, falls through to the next.
func Normalize(v any) Result {
	if isNil(v) {
		return Result{Kind: KindNone, Text: fmt.Sprint(v)}
	}
	text := textOf(v)

	if d, ok := v.(Dumper); ok {
		if out, err := d.Dump(); err == nil && out != nil {
			return Result{Kind: KindStructured, Value: out, Via: VariantDump, Text: text}
		}
	}
	if c, ok := v.(MapConverter); ok {
		if out, err := c.ToMap(); err == nil && out != nil {
			return Result{Kind: KindStructured, Value: out, Via: VariantToMap, Text: text}
		}
	}
	if m, ok := v.(map[string]any); ok {
		return Result{Kind: KindStructured, Value: m, Via: VariantMapping, Text: text}
	}
	if out, ok := parseText(text); ok {
		return Result{Kind: KindStructured, Value: out, Via: VariantText, Text: text}
	}
	return Result{Kind: KindOpaque, Text: text}
}

// isNil reports whether v is nil or a typed nil held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// textOf returns the textual representation used for text parsing and the
// opaque fallback.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case json.RawMessage:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseText(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	var out any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, false
	}
	return out, out != nil
}
