// Package source reads finite, ordered record sequences from CSV files,
// shapefiles, XLSX workbooks, and SQLite queries. Every source exposes the
// same iteration shape so the layer builder does not care where records
// come from.
package source

import (
	"strings"

	"github.com/twpayne/go-geom"
)

// Record is one row of input data. Field lookup is case-insensitive.
type Record interface {
	// Row is the 0-based position of the record in the input sequence.
	Row() int
	// Field returns the raw value of the named field. The second return is
	// false when the record has no value for that field.
	Field(name string) (string, bool)
	// Geometry returns the record's geometry, or nil for tabular sources.
	Geometry() geom.T
}

// Source iterates records in input order. Usage mirrors database/sql rows:
// call Next until it returns false, then check Err.
type Source interface {
	// Header lists the field names the source exposes.
	Header() []string
	Next() bool
	Record() Record
	Err() error
	Close() error
}

// HasField reports whether the header contains the named field,
// case-insensitively.
func HasField(header []string, name string) bool {
	for _, h := range header {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

// record is the shared Record implementation.
type record struct {
	row    int
	fields map[string]string // lowercased field name -> raw value
	geom   geom.T
}

func (r *record) Row() int { return r.row }

func (r *record) Field(name string) (string, bool) {
	v, ok := r.fields[strings.ToLower(name)]
	return v, ok
}

func (r *record) Geometry() geom.T { return r.geom }
