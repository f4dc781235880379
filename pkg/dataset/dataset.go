package dataset

// Kind classifies a column's cell encoding. It is decided once at ingestion
// so downstream stages never have to probe cell values to learn their type.
type Kind int

const (
	// Text cells are opaque strings.
	Text Kind = iota
	// Numeric cells hold canonical dot-decimal text (e.g. "100.5"),
	// validated by the adapter that produced the dataset.
	Numeric
)

// Column describes one dataset column: its current name and cell kind.
type Column struct {
	Name string
	Kind Kind
}

// Dataset is an in-memory table: an ordered column list plus rows of string
// cells aligned with it. Adapters create datasets, the schema and normalize
// stages mutate them in place, and the export views read them.
type Dataset struct {
	Columns []Column
	Rows    [][]string
}

// New builds a dataset from column definitions and rows. Rows shorter than
// the column list are padded with empty cells so every row is aligned.
func New(columns []Column, rows [][]string) *Dataset {
	for i, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return &Dataset{Columns: columns, Rows: rows}
}

// Index returns the position of the named column, or -1 when absent.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	return d.Index(name) >= 0
}

// Rename changes a column's name in place, preserving its position.
// It is a no-op when the old name is absent.
func (d *Dataset) Rename(oldName, newName string) {
	if i := d.Index(oldName); i >= 0 {
		d.Columns[i].Name = newName
	}
}

// SetKind updates the cell kind of the named column.
func (d *Dataset) SetKind(name string, kind Kind) {
	if i := d.Index(name); i >= 0 {
		d.Columns[i].Kind = kind
	}
}

// AddColumn appends a column with the given cells. Cells beyond the current
// row count are ignored; missing cells become empty strings.
func (d *Dataset) AddColumn(col Column, cells []string) {
	d.Columns = append(d.Columns, col)
	for i := range d.Rows {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		d.Rows[i] = append(d.Rows[i], cell)
	}
}

// ColumnNames returns the current column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}
