package config

import (
	"math"
	"strconv"
	"strings"
)

// Type names reported by TypeMismatchError.
const (
	typeString     = "string"
	typeInt        = "int"
	typeInt64      = "int64"
	typeBool       = "bool"
	typeFloat      = "float64"
	typeStringList = "string list"
	typeObjectList = "object list"
	typeObject     = "object"
)

func toString(key string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", &TypeMismatchError{Key: key, Want: typeString, Value: v}
	}
}

func toInt64(key string, v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return int64(t), nil
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		// 0x, 0o and 0b literals kept as text by the YAML decoder
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt64(key, f)
		}
	}
	return 0, &TypeMismatchError{Key: key, Want: typeInt64, Value: v}
}

func toInt(key string, v any) (int, error) {
	n, err := toInt64(key, v)
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &TypeMismatchError{Key: key, Want: typeInt, Value: v}
	}
	return int(n), nil
}

func toBool(key string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, &TypeMismatchError{Key: key, Want: typeBool, Value: v}
}

func toFloat64(key string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, nil
		}
	}
	return 0, &TypeMismatchError{Key: key, Want: typeFloat, Value: v}
}

// toStringList accepts a list of scalars, or a single string holding a
// comma-separated list as given on a command line.
func toStringList(key string, v any) ([]string, error) {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := toString(key, item)
			if err != nil {
				return nil, &TypeMismatchError{Key: key, Want: typeStringList, Value: v}
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return nil, &TypeMismatchError{Key: key, Want: typeStringList, Value: v}
	}
}

func toObjectList(key string, v any) ([]*Object, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, &TypeMismatchError{Key: key, Want: typeObjectList, Value: v}
	}

	out := make([]*Object, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &TypeMismatchError{Key: key, Want: typeObjectList, Value: v}
		}
		out = append(out, &Object{key: key, m: m})
	}
	return out, nil
}
