package source

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the worksheet to read.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// XLSXSource reads records from an XLSX worksheet. The first row is the
// header. The whole sheet is materialized up front; workbooks this tool
// deals with are small.
type XLSXSource struct {
	header []string
	rows   [][]string

	row int
	cur *record
}

// NewXLSX opens the workbook at path and positions on the selected sheet.
func NewXLSX(path string, opts XLSXOptions) (*XLSXSource, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}

	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("xlsx: sheet %q has no header row", sheet.Name)
	}

	header := cellsToStrings(sheet.Rows[0])
	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, r := range sheet.Rows[1:] {
		rows = append(rows, cellsToStrings(r))
	}

	return &XLSXSource{header: header, rows: rows}, nil
}

func pickSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func cellsToStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = cell.String()
	}
	return out
}

func (s *XLSXSource) Header() []string { return s.header }

func (s *XLSXSource) Next() bool {
	if s.row >= len(s.rows) {
		return false
	}

	row := s.rows[s.row]
	fields := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if i >= len(row) {
			break
		}
		fields[strings.ToLower(name)] = row[i]
	}

	s.cur = &record{row: s.row, fields: fields}
	s.row++
	return true
}

func (s *XLSXSource) Record() Record { return s.cur }

func (s *XLSXSource) Err() error { return nil }

func (s *XLSXSource) Close() error { return nil }
