// Package coerce converts raw record field values into the typed attribute
// values that styling rules are evaluated against.
package coerce

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Func converts a raw field value to T. A non-nil error means the value
// cannot be represented as T.
type Func[T any] func(raw string) (T, error)

// Int parses a raw value as a base-10 integer.
func Int(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, eris.Errorf("coerce: %q is not an integer", raw)
	}
	return v, nil
}

// Float parses a raw value as a float.
func Float(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, eris.Errorf("coerce: %q is not a number", raw)
	}
	return v, nil
}

// String is the identity coercion.
func String(raw string) (string, error) {
	return raw, nil
}
