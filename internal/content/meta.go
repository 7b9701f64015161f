package content

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Meta is decoded front matter. Every accessor takes the value to use when
// the key is absent or holds something it cannot coerce.
type Meta map[string]any

func (m Meta) Has(key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

func (m Meta) String(key, def string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return def
	}
}

// OptString returns the trimmed value or "" when absent.
func (m Meta) OptString(key string) string {
	return strings.TrimSpace(m.String(key, ""))
}

func (m Meta) Number(key string, def decimal.Decimal) decimal.Decimal {
	switch v := m[key].(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint64:
		if v > math.MaxInt64 {
			return def
		}
		return decimal.NewFromInt(int64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return d
	default:
		return def
	}
}

func (m Meta) Int(key string, def int) int {
	d := m.Number(key, decimal.NewFromInt(int64(def)))
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return def
	}
	return int(d.IntPart())
}

func (m Meta) Bool(key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		return def
	case int:
		return v != 0
	default:
		return def
	}
}

// Strings accepts a YAML list of scalars or a single scalar.
func (m Meta) Strings(key string) []string {
	switch v := m[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			switch s := it.(type) {
			case string:
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			case int, int64, float64, bool:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

// Map returns a nested mapping, or an empty Meta.
func (m Meta) Map(key string) Meta {
	if v, ok := m[key].(map[string]any); ok {
		return Meta(v)
	}
	return Meta{}
}

// List returns a YAML sequence as-is, or nil.
func (m Meta) List(key string) []any {
	v, _ := m[key].([]any)
	return v
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Time parses date-like values. ok is false when the key is absent or the
// value matches none of the accepted layouts.
func (m Meta) Time(key string) (time.Time, bool) {
	switch v := m[key].(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		return ParseTime(v)
	default:
		return time.Time{}, false
	}
}

func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
