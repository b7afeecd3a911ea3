package layer

import "fmt"

// CoercionError reports a record whose raw attribute value could not be
// converted to the declared type.
type CoercionError struct {
	Row    int
	Column string
	Raw    string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot coerce %q: %v", e.Row, e.Column, e.Raw, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// NoMatchError reports a record whose attribute value matched no styling
// rule and for which no default style was configured. A catch-all rule or
// a default style is the escape hatch.
type NoMatchError struct {
	Row    int
	Column string
	Value  any
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("row %d: no styling rule matched %s=%v and no default style is set", e.Row, e.Column, e.Value)
}

// MissingColumnError reports a declared column that is absent from the
// source header. This is a configuration error: it is raised before any
// record is processed and fails the whole layer.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in source header", e.Column)
}
