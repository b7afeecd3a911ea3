package source

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteSource reads records from a SQLite query result. Column names are
// the header; values are rendered as strings and NULLs are absent fields.
type SQLiteSource struct {
	db     *sql.DB
	rows   *sql.Rows
	header []string

	row int
	cur *record
	err error
}

// NewSQLite opens the database at path and runs query. The query's result
// set is the record sequence.
func NewSQLite(ctx context.Context, path, query string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: open %s", path)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: query")
	}

	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		db.Close()
		return nil, eris.Wrap(err, "sqlite: columns")
	}

	return &SQLiteSource{db: db, rows: rows, header: header}, nil
}

func (s *SQLiteSource) Header() []string { return s.header }

func (s *SQLiteSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			s.err = eris.Wrap(err, "sqlite: iterate rows")
		}
		return false
	}

	values := make([]sql.NullString, len(s.header))
	dest := make([]any, len(s.header))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		s.err = eris.Wrapf(err, "sqlite: scan row %d", s.row)
		return false
	}

	fields := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if values[i].Valid {
			fields[strings.ToLower(name)] = values[i].String
		}
	}

	s.cur = &record{row: s.row, fields: fields}
	s.row++
	return true
}

func (s *SQLiteSource) Record() Record { return s.cur }

func (s *SQLiteSource) Err() error { return s.err }

func (s *SQLiteSource) Close() error {
	if s.rows != nil {
		_ = s.rows.Close()
	}
	return s.db.Close()
}
