package dataset

import (
	"bytes"
	"encoding/csv"
)

// ToMaps renders the dataset as one map per row, keyed by column name.
// A nil dataset yields an empty (non-nil) slice so callers never have to
// nil-check an absent dependant dataset.
func ToMaps(d *Dataset) []map[string]string {
	if d == nil {
		return []map[string]string{}
	}
	out := make([]map[string]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		m := make(map[string]string, len(d.Columns))
		for i, c := range d.Columns {
			m[c.Name] = row[i]
		}
		out = append(out, m)
	}
	return out
}

// ToRows renders the dataset as plain cell slices, without the header.
// A nil dataset yields an empty (non-nil) slice.
func ToRows(d *Dataset) [][]string {
	if d == nil {
		return [][]string{}
	}
	out := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		cells := make([]string, len(row))
		copy(cells, row)
		out = append(out, cells)
	}
	return out
}

// ToCSV serializes the dataset as comma-separated text with a header row and
// no index column, regardless of the separator the source used. A nil
// dataset yields the empty string.
func ToCSV(d *Dataset) string {
	if d == nil {
		return ""
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Writes to bytes.Buffer cannot fail, so Write errors are ignored here.
	_ = w.Write(d.ColumnNames())
	for _, row := range d.Rows {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}
