package utils

import (
	"strconv"
	"strings"
)

// ToInt converts an integer, float or numeric string to int.
// The second result is false when val holds no number.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		return i, err == nil
	case []byte:
		return ToInt(string(v))
	default:
		return 0, false
	}
}

// ToBool converts various types to bool.
// Strings are true for "1", "true", "y" and "yes", in any case.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32:
		i, _ := ToInt(v)
		return i == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "y", "yes":
			return true
		}
		return false
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
