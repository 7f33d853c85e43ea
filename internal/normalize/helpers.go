package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pick the first non-empty string value among the given keys.
func pickStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				s2 := strings.TrimSpace(s)
				if s2 != "" {
					return s2
				}
			}
		}
	}
	return ""
}

// Pick the first numeric value among the given keys. Accepts float64,
// integer types, json.Number, and numeric strings.
func pickFloat(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case float64:
			return vv
		case float32:
			return float64(vv)
		case int:
			return float64(vv)
		case int64:
			return float64(vv)
		case json.Number:
			if f, err := vv.Float64(); err == nil {
				return f
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(vv), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func pickInt(m map[string]any, keys ...string) int {
	return int(pickFloat(m, keys...))
}

// Pick the first parseable timestamp among the given keys. Values may be
// time.Time (database/sql rows), strings in common layouts, or epoch seconds.
func pickTime(m map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch vv := v.(type) {
		case time.Time:
			if !vv.IsZero() {
				return vv.UTC()
			}
		case string:
			if t, err := parseTimeFlexible(vv); err == nil {
				return t
			}
		case float64:
			if vv > 0 {
				return time.Unix(int64(vv), 0).UTC()
			}
		case json.Number:
			if sec, err := vv.Int64(); err == nil && sec > 0 {
				return time.Unix(sec, 0).UTC()
			}
		}
	}
	return time.Time{}
}

// Parse timestamps in a few common formats (RFC3339, epoch seconds,
// Postgres text layouts).
func parseTimeFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if len(s) >= 10 {
		allDigits := true
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
				return time.Unix(sec, 0).UTC(), nil
			}
		}
	}
	for _, layout := range []string{"2006-01-02 15:04:05.999999Z07:00", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time: %s", s)
}

// stringID renders whatever the row carries as id. PostgREST returns uuid
// strings, but numeric ids show up in older rows.
func stringID(m map[string]any, keys ...string) string {
	if s := pickStr(m, keys...); s != "" {
		return s
	}
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
