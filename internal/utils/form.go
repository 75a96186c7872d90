package utils

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// ToValues flattens a mapping payload into url.Values.
// Nil entries are skipped, slices repeat the key, nested mappings are JSON encoded.
func ToValues(v any) (url.Values, error) {
	values := url.Values{}
	if IsUndefinedOrNull(v) {
		return values, nil
	}

	switch typed := v.(type) {
	case url.Values:
		for k, vv := range typed {
			values[k] = append([]string(nil), vv...)
		}
		return values, nil
	case map[string]string:
		for k, s := range typed {
			values.Set(k, s)
		}
		return values, nil
	case map[string][]string:
		for k, vv := range typed {
			values[k] = append([]string(nil), vv...)
		}
		return values, nil
	}

	fields, err := toStringMap(v)
	if err != nil {
		return nil, err
	}
	for k, field := range fields {
		if err := addValue(values, k, field); err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", k, err)
		}
	}
	return values, nil
}

// EncodeForm renders a mapping payload as application/x-www-form-urlencoded text.
// Keys are sorted.
func EncodeForm(v any) (string, error) {
	values, err := ToValues(v)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// toStringMap turns maps with string keys and structs into map[string]any.
func toStringMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}

	rv, ok := indirect(v)
	if !ok {
		return map[string]any{}, nil
	}

	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}

	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("cannot form-encode %T", v)
	}

	// Structs go through their JSON tags.
	raw, err := json.Marshal(rv.Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to flatten %T: %w", v, err)
	}
	return out, nil
}

func addValue(values url.Values, key string, v any) error {
	if IsUndefinedOrNull(v) {
		return nil
	}

	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			if IsUndefinedOrNull(item) {
				continue
			}
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			values.Add(key, s)
		}
		return nil
	}

	s, err := scalarString(v)
	if err != nil {
		return err
	}
	values.Add(key, s)
	return nil
}

func scalarString(v any) (string, error) {
	switch typed := v.(type) {
	case string:
		return typed, nil
	case []byte:
		return string(typed), nil
	case bool:
		return strconv.FormatBool(typed), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), nil
	case json.Number:
		return typed.String(), nil
	case fmt.Stringer:
		return typed.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Map, reflect.Struct, reflect.Pointer:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return fmt.Sprint(v), nil
	}
}
