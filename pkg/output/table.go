package output

import (
	"fmt"
	"io"
	"strings"
)

// Column is a table column and its current width in display cells.
type Column struct {
	Header string
	Width  int
}

// Table lays out rows in columns sized to their widest cell.
//
// Rows are buffered until Render so every column width is known before
// anything is written.
type Table struct {
	columns   []Column
	rows      [][]string
	separator string
	statusCol int
}

// NewTable creates a table with the given headers.
//
// Parameters:
//   - headers: Column headers, left to right
//
// Returns:
//   - *Table: An empty table separated by two spaces
func NewTable(headers ...string) *Table {
	t := &Table{separator: "  ", statusCol: -1}
	for _, h := range headers {
		t.columns = append(t.columns, Column{Header: h, Width: DisplayWidth(h)})
	}
	return t
}

// WithStatusColumn marks the column whose values are coloured by Colorize.
func (t *Table) WithStatusColumn(index int) *Table {
	t.statusCol = index
	return t
}

// AddRow appends a row and widens columns to fit it. Extra values beyond the
// column count are ignored; missing ones render empty.
func (t *Table) AddRow(values ...string) *Table {
	row := make([]string, len(t.columns))
	copy(row, values)
	for i, val := range row {
		if w := DisplayWidth(val); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// ColumnWidth returns the width of column index, 0 when out of range.
func (t *Table) ColumnWidth(index int) int {
	if index < 0 || index >= len(t.columns) {
		return 0
	}
	return t.columns[index].Width
}

// HeaderRow returns the padded header line.
func (t *Table) HeaderRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = ToWidth(col.Header, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow returns a row of dashes under each header.
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow pads row to the column widths, colouring the status column.
func (t *Table) FormatRow(row []string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		cell := ToWidth(val, col.Width)
		if i == len(t.columns)-1 {
			cell = val
		}
		if i == t.statusCol {
			cell = Colorize(val, cell)
		}
		parts[i] = cell
	}
	return strings.Join(parts, t.separator)
}

// Render writes the header, separator and every row to w.
func (t *Table) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, t.HeaderRow()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.SeparatorRow()); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := fmt.Fprintln(w, t.FormatRow(row)); err != nil {
			return err
		}
	}
	return nil
}
