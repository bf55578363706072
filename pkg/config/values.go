package config

import (
	"fmt"
	"time"
)

// Values is a partial option record. Nested records are Values (or any
// map with string keys); every other value is a leaf that replaces wholesale.
type Values map[string]any

// Defaults returns a fresh copy of the default option record.
// Callers may modify the result freely.
func Defaults() Values {
	return Values{
		"size":                100,
		"minSectors":          6,
		"radius":              50.0,
		"multiInnerRadius":    0.4,
		"multiSectorSpace":    0.06,
		"closeOnClick":        true,
		"closeOnClickOutside": true,
		"fontSize":            "38%",
		"transitionFallback":  600 * time.Millisecond,
		"nested": Values{
			"title":         true,
			"useParentIcon": false,
		},
		"icons": Values{
			"close":     "#close",
			"closeSize": 7.0,
			"back":      "#return",
			"backSize":  8.0,
		},
		"classes": Values{
			"container": "menuHolder",
			"menu":      "menu",
			"inner":     "inner",
			"outer":     "outer",
			"open":      "open",
			"closed":    "close",
			"sector":    "sector",
			"selected":  "selected",
			"nested":    "nested",
			"disabled":  "dummy",
			"center":    "center",
			"icons":     "icons",
		},
		"keys": Values{
			"back":     []any{"Escape", "Backspace"},
			"select":   []any{"Enter"},
			"forward":  []any{"ArrowRight", "ArrowUp"},
			"backward": []any{"ArrowLeft", "ArrowDown"},
		},
	}
}

// Merge returns base with every overlay merged over it, left to right.
// When a key holds a record on both sides the records are merged recursively;
// otherwise the overlay value replaces the base value, arrays included.
// None of the arguments is modified and the result shares no maps or slices with them.
func Merge(base Values, overlays ...Values) Values {
	out := cloneRecord(base)
	for _, o := range overlays {
		mergeInto(out, o)
	}
	return out
}

func mergeInto(dst, src Values) {
	for k, sv := range src {
		srcRec, srcIsRec := asRecord(sv)
		if !srcIsRec {
			dst[k] = cloneValue(sv)
			continue
		}

		if dstRec, ok := dst[k].(Values); ok {
			mergeInto(dstRec, srcRec)
			continue
		}
		dst[k] = cloneRecord(srcRec)
	}
}

// asRecord reports whether v is a structured record and returns it as Values.
// Arrays are never records.
func asRecord(v any) (Values, bool) {
	switch m := v.(type) {
	case Values:
		return m, true
	case map[string]any:
		return Values(m), true
	case map[any]any:
		out := make(Values, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func cloneRecord(m Values) Values {
	out := make(Values, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if rec, ok := asRecord(v); ok {
		return cloneRecord(rec)
	}

	switch s := v.(type) {
	case []any:
		out := make([]any, len(s))
		for k := range s {
			out[k] = cloneValue(s[k])
		}
		return out
	case []string:
		return append([]string(nil), s...)
	default:
		return v
	}
}
