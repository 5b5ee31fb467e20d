package utils

import (
	"encoding/json"
	"math"
	"strconv"
)

// ScalarString renders a loosely-typed scalar as text.
// It accepts strings, booleans, json.Number and the standard numeric types.
// Objects, arrays and nil are rejected with ok=false.
func ScalarString(val any) (s string, ok bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return "", false
	}
}

// Falsy reports whether val is a zero scalar: nil, "", false, or a numeric zero or NaN.
// Objects and arrays are never falsy.
func Falsy(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case int32:
		return v == 0
	case uint:
		return v == 0
	case uint64:
		return v == 0
	case uint32:
		return v == 0
	case float64:
		return v == 0 || math.IsNaN(v)
	case float32:
		return v == 0 || math.IsNaN(float64(v))
	default:
		return false
	}
}

// StringSlice returns val as a []string if it is a sequence made only of strings.
// A []string is returned as a copy. An empty sequence yields an empty, non-nil slice.
func StringSlice(val any) ([]string, bool) {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
