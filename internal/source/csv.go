package source

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV record source.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// CSVSource reads records from CSV input. The first row is the header.
type CSVSource struct {
	reader *csv.Reader
	closer io.Closer // nil when reading from a plain io.Reader
	header []string
	opts   CSVOptions

	row  int
	cur  *record
	err  error
	done bool
}

// NewCSV builds a CSV source from r. When r is an io.Closer (an open
// file), Close closes it.
func NewCSV(r io.Reader, opts CSVOptions) (*CSVSource, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: input has no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	src := &CSVSource{reader: reader, header: header, opts: opts}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}

func (s *CSVSource) Header() []string { return s.header }

func (s *CSVSource) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	row, err := s.reader.Read()
	if err == io.EOF {
		s.done = true
		return false
	}
	if err != nil {
		s.err = eris.Wrapf(err, "csv: read row %d", s.row)
		return false
	}

	fields := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if i >= len(row) {
			break // ragged row: trailing fields are absent
		}
		v := row[i]
		if s.opts.TrimSpace {
			v = strings.TrimSpace(v)
		}
		fields[strings.ToLower(name)] = v
	}

	s.cur = &record{row: s.row, fields: fields}
	s.row++
	return true
}

func (s *CSVSource) Record() Record { return s.cur }

func (s *CSVSource) Err() error { return s.err }

func (s *CSVSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
