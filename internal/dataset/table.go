package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an immutable in-memory tabular structure loaded from a CSV
// file. Records are never mutated after load; the analysis layer only
// derives new aggregates from them.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table and its column index
func NewTable(name string, headers []string, rows [][]string) *Table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	return &Table{
		Name:    name,
		Headers: headers,
		Rows:    rows,
		index:   index,
	}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column by name
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the cell at (row, column), or "" if the column does not
// exist or the row is ragged
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// IsNull reports whether the cell is missing or blank. Null values are a
// tracked data-quality metric, not an error condition.
func (t *Table) IsNull(row int, column string) bool {
	return strings.TrimSpace(t.Value(row, column)) == ""
}

// Int parses the cell as an integer
func (t *Table) Int(row int, column string) (int, bool) {
	v := strings.TrimSpace(t.Value(row, column))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float parses the cell as a float
func (t *Table) Float(row int, column string) (float64, bool) {
	v := strings.TrimSpace(t.Value(row, column))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IDSet collects the distinct non-null values of a column
func (t *Table) IDSet(column string) map[string]struct{} {
	out := make(map[string]struct{})
	i, ok := t.index[column]
	if !ok {
		return out
	}
	for _, row := range t.Rows {
		if i >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[i])
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}

// ValueCounts counts occurrences of each non-null value of a column
func (t *Table) ValueCounts(column string) map[string]int {
	out := make(map[string]int)
	i, ok := t.index[column]
	if !ok {
		return out
	}
	for _, row := range t.Rows {
		if i >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[i])
		if v != "" {
			out[v]++
		}
	}
	return out
}

// NullCount counts rows where the column is missing or blank
func (t *Table) NullCount(column string) int {
	n := 0
	for r := range t.Rows {
		if t.IsNull(r, column) {
			n++
		}
	}
	return n
}

// ApproxBytes estimates the in-memory size of the table
func (t *Table) ApproxBytes() int64 {
	var total int64
	for _, h := range t.Headers {
		total += int64(len(h))
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			total += int64(len(cell) + 16) // String header overhead estimate
		}
	}
	return total
}

// FirstWhere returns the first row index where column equals value
func (t *Table) FirstWhere(column, value string) (int, bool) {
	i, ok := t.index[column]
	if !ok {
		return 0, false
	}
	for r, row := range t.Rows {
		if i < len(row) && strings.TrimSpace(row[i]) == value {
			return r, true
		}
	}
	return 0, false
}

// TableSnapshot is the serialisable form used by the table cache
type TableSnapshot struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Snapshot returns the serialisable form of the table
func (t *Table) Snapshot() TableSnapshot {
	return TableSnapshot{Name: t.Name, Headers: t.Headers, Rows: t.Rows}
}

// FromSnapshot rebuilds a table from its serialised form
func FromSnapshot(s TableSnapshot) (*Table, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("empty table snapshot")
	}
	return NewTable(s.Name, s.Headers, s.Rows), nil
}
