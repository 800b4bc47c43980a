package domain

// FilenameColumn is the derived column appended to every transformed table.
const FilenameColumn = "filename"

// Table is a parsed export: an ordered header and rows of string values.
// Every row has exactly len(Header) values.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(header []string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	return &Table{Header: h}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column in row order.
// The second result is false when the column does not exist.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// AppendRow adds a row. It returns false, leaving the table untouched,
// when the row width does not match the header.
func (t *Table) AppendRow(values []string) bool {
	if len(values) != len(t.Header) {
		return false
	}
	row := make([]string, len(values))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return true
}

// SetColumn fills the named column with value on every row.
// An existing column of that name is overwritten in place,
// otherwise the column is appended.
func (t *Table) SetColumn(name, value string) {
	idx := t.ColumnIndex(name)
	if idx >= 0 {
		for _, row := range t.Rows {
			row[idx] = value
		}
		return
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
}
