package render

import (
	"fmt"
	"reflect"
	"strings"
)

// Data is the value tree a template is rendered against. Values may be
// strings, lists, nested maps, booleans or numbers; absent keys are falsy.
type Data map[string]any

// Merge copies every truthy value of other into d, overwriting existing
// keys. Falsy values never clobber what is already there.
func (d Data) Merge(other Data) {
	for k, v := range other {
		if Truthy(v) {
			d[k] = v
		}
	}
}

// Lookup resolves a dot path such as "author.name". It reports false when any
// segment is missing or an intermediate value is not a map.
func Lookup(data Data, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	return lookup(data, strings.Split(path, "."))
}

func lookup(data Data, segs []string) (any, bool) {
	var cur any = data
	for _, seg := range segs {
		next, ok := index(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// index returns m[key] for any map keyed by strings.
func index(m any, key string) (any, bool) {
	switch m := m.(type) {
	case Data:
		v, ok := m[key]
		return v, ok
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	case map[string][]string:
		v, ok := m[key]
		return v, ok
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(m)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// Truthy reports whether v causes a block to be rendered. Non-empty strings,
// lists and maps, true, and non-zero numbers are truthy; nil, false, zero and
// empty values are falsy.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case Data:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case map[string]string:
		return len(v) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface())
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	default:
		return !rv.IsZero()
	}
}

// stringify converts a resolved value to its substitution text. Lists are
// joined with policy, skipping items that render empty. Maps and structs
// render as the empty string.
func stringify(v any, policy ListPolicy) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return policy.Join(nonEmpty(v))
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return stringify(rv.Elem().Interface(), policy)
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ""
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, stringify(rv.Index(i).Interface(), policy))
		}
		return policy.Join(nonEmpty(items))
	default:
		return fmt.Sprint(v)
	}
}

func nonEmpty(items []string) []string {
	out := items[:0:0]
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
