package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRecord is one building as supplied by an inventory: attribute name to
// JSON scalar. Nil, blank strings and NaN count as missing.
type RawRecord map[string]any

// Lookup returns the first key among keys that holds a present value.
func (r RawRecord) Lookup(keys ...string) (string, any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || isMissing(v) {
			continue
		}
		return k, v, true
	}
	return "", nil, false
}

// Has reports whether any of keys holds a present value.
func (r RawRecord) Has(keys ...string) bool {
	_, _, ok := r.Lookup(keys...)
	return ok
}

// Float returns the first present value among keys as a float64.
// ok is false when no key is present.
func (r RawRecord) Float(keys ...string) (float64, bool, error) {
	k, v, ok := r.Lookup(keys...)
	if !ok {
		return 0, false, nil
	}
	f, err := toFloat(k, v)
	return f, err == nil, err
}

// Int returns the first present value among keys truncated to an int.
func (r RawRecord) Int(keys ...string) (int, bool, error) {
	f, ok, err := r.Float(keys...)
	if !ok || err != nil {
		return 0, ok, err
	}
	return int(f), true, nil
}

// String returns the first present value among keys as a trimmed string.
// Whole numbers render without a decimal point.
func (r RawRecord) String(keys ...string) (string, bool) {
	_, v, ok := r.Lookup(keys...)
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// Bool returns the first present value among keys as a bool. Accepts
// booleans, numbers (non-zero is true) and YES/NO/TRUE/FALSE/Y/N/1/0 strings.
func (r RawRecord) Bool(keys ...string) (bool, bool, error) {
	k, v, ok := r.Lookup(keys...)
	if !ok {
		return false, false, nil
	}
	switch x := v.(type) {
	case bool:
		return x, true, nil
	case string:
		switch strings.ToUpper(strings.TrimSpace(x)) {
		case "YES", "Y", "TRUE", "T", "1":
			return true, true, nil
		case "NO", "N", "FALSE", "F", "0":
			return false, true, nil
		}
		return false, false, &UnknownAttributeValueError{Field: k, Value: v}
	}
	f, err := toFloat(k, v)
	if err != nil {
		return false, false, err
	}
	return f != 0, true, nil
}

func toFloat(field string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, &UnknownAttributeValueError{Field: field, Value: v}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, &UnknownAttributeValueError{Field: field, Value: v}
		}
		return f, nil
	}
	return 0, &UnknownAttributeValueError{Field: field, Value: v}
}

func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}
