package source

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// ShapefileSource reads records from a shapefile's attribute table and
// pairs each one with its converted geometry.
type ShapefileSource struct {
	reader *shp.Reader
	header []string

	row int
	cur *record
	err error
}

// NewShapefile opens the .shp file at path.
func NewShapefile(path string) (*ShapefileSource, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "shapefile: open %s", path)
	}

	// DBF field names are fixed-width and NUL padded.
	fields := reader.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.TrimRight(f.String(), "\x00")
	}

	return &ShapefileSource{reader: reader, header: header}, nil
}

func (s *ShapefileSource) Header() []string { return s.header }

func (s *ShapefileSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.reader.Next() {
		if err := s.reader.Err(); err != nil {
			s.err = eris.Wrap(err, "shapefile: read record")
		}
		return false
	}

	_, shape := s.reader.Shape()

	fields := make(map[string]string, len(s.header))
	for i, name := range s.header {
		val := strings.TrimRight(s.reader.Attribute(i), "\x00")
		fields[strings.ToLower(name)] = strings.TrimSpace(val)
	}

	s.cur = &record{row: s.row, fields: fields, geom: shapeToGeom(shape)}
	s.row++
	return true
}

func (s *ShapefileSource) Record() Record { return s.cur }

func (s *ShapefileSource) Err() error { return s.err }

func (s *ShapefileSource) Close() error { return s.reader.Close() }
