// Package datastore loads a multi-sheet XLSX workbook into an in-memory
// cache of row records and exposes key-based lookup for data-driven
// scenarios.
//
// A Store follows a strict two-phase contract: Load must succeed before
// any read; reads on an unloaded store return ErrNotLoaded. After a
// successful Load the cache is immutable and safe for concurrent reads
// across parallel scenario workers.
package datastore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ErrNotLoaded is returned by reads that happen before a successful
// Load. Reading an unloaded store is a programming error in the caller,
// not a data condition, so it is reported immediately instead of being
// papered over with an implicit load.
var ErrNotLoaded = errors.New("datastore: not loaded, call Load first")

// DataLoadError reports a workbook that could not be read or parsed.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading data file %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Row is one data-driven test case: a mapping from column name to cell
// value. Values are typed where the source cell allows it (bool,
// float64) and fall back to trimmed strings. Columns absent in a short
// source row are absent from the map. Rows are immutable after load.
type Row map[string]any

// Has reports whether the column is present in this row.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// String returns the cell rendered as a trimmed string, or "" when the
// column is absent.
func (r Row) String(column string) string {
	v, ok := r[column]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Bool returns the cell as a boolean. Non-boolean cells parse through
// strconv; unparseable cells report false.
func (r Row) Bool(column string) (bool, bool) {
	v, ok := r[column]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.ToLower(t))
		return b, err == nil
	default:
		return false, false
	}
}

// Float returns the cell as a number.
func (r Row) Float(column string) (float64, bool) {
	v, ok := r[column]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Store is the tabular data cache: sheet name to ordered row records.
// Construct one explicitly and hand it to whoever needs it; there is no
// package-level instance.
type Store struct {
	path   string
	sheets map[string][]Row
	order  []string
	loaded bool
}

// New creates an empty, unloaded store.
func New() *Store {
	return &Store{}
}

// Load reads the workbook at path and replaces the cache. Parsing
// happens into a fresh sheet map which is swapped in only on success;
// any failure returns a *DataLoadError and leaves the previous cache
// untouched, so a first-load failure keeps the store in its explicit
// "not loaded" state. Logs a per-sheet row count on success.
func (s *Store) Load(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := make(map[string][]Row)
	var order []string
	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name)
		if err != nil {
			return &DataLoadError{Path: path, Err: fmt.Errorf("reading sheet %q: %w", name, err)}
		}
		sheets[name] = parseSheet(raw)
		order = append(order, name)
	}

	s.path = path
	s.sheets = sheets
	s.order = order
	s.loaded = true

	for _, name := range order {
		log.Info().Str("sheet", name).Int("rows", len(sheets[name])).Msg("loaded data sheet")
	}
	return nil
}

// parseSheet turns the raw cell grid into row records using the first
// row as the column header. Fully empty rows are skipped.
func parseSheet(raw [][]string) []Row {
	if len(raw) == 0 {
		return nil
	}
	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if emptyRow(cells) {
			continue
		}
		row := make(Row, len(header))
		for i, cell := range cells {
			if i >= len(header) {
				break
			}
			col := strings.TrimSpace(header[i])
			if col == "" {
				continue
			}
			row[col] = typeCell(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// typeCell infers a scalar type for a cell: booleans and numbers keep
// their native type, everything else is a trimmed string.
func typeCell(cell string) any {
	v := strings.TrimSpace(cell)
	switch v {
	case "TRUE", "true":
		return true
	case "FALSE", "false":
		return false
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// Loaded reports whether a Load has succeeded.
func (s *Store) Loaded() bool { return s.loaded }

// Path returns the path of the loaded workbook.
func (s *Store) Path() string { return s.path }

// Sheets returns the sheet names in workbook order.
func (s *Store) Sheets() ([]string, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// GetSheet returns the sheet's rows in source order. An absent sheet
// name yields an empty slice and a logged warning, not an error;
// callers that need to distinguish should check the length.
func (s *Store) GetSheet(name string) ([]Row, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	rows, ok := s.sheets[name]
	if !ok {
		log.Warn().Str("sheet", name).Str("path", s.path).Msg("sheet not found in data file")
		return nil, nil
	}
	return rows, nil
}

// GetRow scans the named sheet for the first row whose key column
// equals value, comparing trimmed, case-sensitive string renderings.
// Duplicate keys resolve deterministically to the first match in source
// order. A missing row is reported through the boolean, never an error;
// a missing sheet additionally logs a warning via GetSheet.
func (s *Store) GetRow(sheet, key, value string) (Row, bool, error) {
	rows, err := s.GetSheet(sheet)
	if err != nil {
		return nil, false, err
	}
	want := strings.TrimSpace(value)
	for _, row := range rows {
		if !row.Has(key) {
			continue
		}
		if strings.TrimSpace(row.String(key)) == want {
			return row, true, nil
		}
	}
	return nil, false, nil
}
