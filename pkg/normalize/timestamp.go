package normalize

import (
	"strings"

	"github.com/araddon/dateparse"

	"datamig/pkg/dataset"
	"datamig/pkg/schema"
)

const timestampLayout = "2006-01-02 15:04:05"

// formatTimestamps rewrites every data_hora cell in the canonical
// YYYY-MM-DD HH:MM:SS form. Blank or unparseable values normalize to the
// empty string; a parse failure is never an error and no sentinel text may
// leak to the output.
func formatTimestamps(d *dataset.Dataset) {
	idx := d.Index(schema.ColTimestamp)
	if idx < 0 {
		return
	}
	for _, row := range d.Rows {
		s := strings.TrimSpace(row[idx])
		if s == "" {
			row[idx] = ""
			continue
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			row[idx] = ""
			continue
		}
		row[idx] = t.Format(timestampLayout)
	}
	d.SetKind(schema.ColTimestamp, dataset.Text)
}
