// Package utils holds the pure predicates and encoders the transports branch on.
package utils

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"courier/internal/domain"
)

// Runtime detection

const legacyAppName = "Microsoft Internet Explorer"

// IsIE9 reports whether nav describes Internet Explorer 9 or older.
// Example AppVersion: "4.0 (compatible; MSIE 9.0; Windows NT 6.1; Trident/5.0)"
func IsIE9(nav domain.Navigator) bool {
	parts := strings.Split(nav.AppVersion, ";")
	if len(parts) < 2 || parts[1] == "" {
		return false
	}

	version := strings.ReplaceAll(parts[1], " ", "")
	version = strings.Replace(version, "MSIE", "", 1)

	major, ok := leadingInt(version)
	if !ok {
		return false
	}
	return nav.AppName == legacyAppName && major <= 9
}

// leadingInt parses the integer prefix of s, the way parseInt does.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Value predicates

// IsUndefinedOrNull reports whether v is nil or a nil reference value.
func IsUndefinedOrNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// IsMapping reports whether v is a map or a struct, directly or behind pointers.
func IsMapping(v any) bool {
	rv, ok := indirect(v)
	if !ok {
		return false
	}
	return rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct
}

// IsEmptyObject reports whether v is a mapping that serializes to "{}".
func IsEmptyObject(v any) bool {
	rv, ok := indirect(v)
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Len() == 0
	case reflect.Struct:
		b, err := json.Marshal(rv.Interface())
		return err == nil && string(b) == "{}"
	default:
		return false
	}
}

func indirect(v any) (reflect.Value, bool) {
	if IsUndefinedOrNull(v) {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}
