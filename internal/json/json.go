// Package json decodes Sidekiq job payloads into loosely typed maps.
package json

import (
	"encoding/json"
	"time"
)

// Parse parses a JSON object into a map.
func Parse(data string) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// get returns m[key] as a T, or the zero T if missing or of another type.
func get[T any](m map[string]interface{}, key string) T {
	v, _ := m[key].(T)
	return v
}

// GetString returns a string value from a map, or empty string if not found/wrong type.
func GetString(m map[string]interface{}, key string) string {
	return get[string](m, key)
}

// GetFloat64 returns a float64 value from a map, or 0 if not found/wrong type.
func GetFloat64(m map[string]interface{}, key string) float64 {
	return get[float64](m, key)
}

// GetSlice returns an interface slice from a map, or nil if not found/wrong type.
func GetSlice(m map[string]interface{}, key string) []interface{} {
	return get[[]interface{}](m, key)
}

// GetTime converts a Unix timestamp in fractional seconds to a time.Time.
// Returns the zero time if the key is missing or not positive.
func GetTime(m map[string]interface{}, key string) time.Time {
	f := GetFloat64(m, key)
	if f <= 0 {
		return time.Time{}
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9))
}
