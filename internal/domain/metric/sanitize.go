package metric

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var ErrMissingMetric = errors.New("at least one health metric is required")

// Reading is a sanitized set of metric values plus optional free-text notes.
type Reading struct {
	Values Values
	Notes  string
}

// Map returns the reading in the same shape Sanitize accepts.
func (r Reading) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Values)+1)
	for m, f := range r.Values {
		out[string(m)] = f
	}
	if r.Notes != "" {
		out[NotesKey] = r.Notes
	}
	return out
}

// Sanitize keeps only whitelisted keys from raw, coercing numeric-looking
// values to float64 and silently dropping unknown keys and unparseable values.
// It returns ErrMissingMetric when no metric survives; notes alone do not count.
func Sanitize(raw map[string]interface{}) (Reading, error) {
	reading := Reading{Values: make(Values)}

	for key, value := range raw {
		if key == NotesKey {
			if s, ok := value.(string); ok {
				reading.Notes = strings.TrimSpace(s)
			}
			continue
		}

		m, ok := Parse(key)
		if !ok {
			continue
		}

		if f, ok := ToFloat(value); ok {
			reading.Values[m] = f
		}
	}

	if len(reading.Values) == 0 {
		return reading, ErrMissingMetric
	}

	return reading, nil
}

// ToFloat coerces numbers and numeric strings to a finite float64.
func ToFloat(value interface{}) (float64, bool) {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
