package source

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/clbanning/mxj/v2"
	"github.com/sirupsen/logrus"

	"datamig/pkg/dataset"
)

// recordsPath is where user records live in the markup document:
// <records><record>…</record>…</records>.
const (
	markupRootTag   = "records"
	markupRecordTag = "record"
)

// MarkupFile reads a tagged-markup (XML) file of user records. This source
// carries no dependant data.
type MarkupFile struct {
	Path   string
	logger *logrus.Logger
}

// NewMarkupFile builds the adapter for a tagged-markup user file.
func NewMarkupFile(path string, logger *logrus.Logger) *MarkupFile {
	return &MarkupFile{Path: path, logger: logger}
}

func (f *MarkupFile) Name() string {
	return f.Path
}

// Load parses the document into a raw user dataset. Column order follows the
// element order of the first record; column kinds are inferred at ingestion.
func (f *MarkupFile) Load(_ context.Context) (*dataset.Dataset, *dataset.Dataset, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &NotFoundError{Path: f.Path}
		}
		return nil, nil, &ReadError{Source: f.Path, Err: err}
	}

	users, err := f.parse(data)
	if err != nil {
		return nil, nil, &ReadError{Source: f.Path, Err: err}
	}
	return users, nil, nil
}

func (f *MarkupFile) parse(data []byte) (*dataset.Dataset, error) {
	decoded, _, err := decodeToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	doc, err := mxj.NewMapXml(decoded)
	if err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	values, err := doc.ValuesForPath(markupRootTag + "." + markupRecordTag)
	if err != nil || len(values) == 0 {
		return nil, fmt.Errorf("document contains no %s.%s entries", markupRootTag, markupRecordTag)
	}

	records := make([]map[string]string, 0, len(values))
	for i, v := range values {
		fields, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected a flat element map, got %T", i+1, v)
		}
		record := make(map[string]string, len(fields))
		for name, raw := range fields {
			switch cell := raw.(type) {
			case string:
				record[name] = cell
			case nil:
				record[name] = ""
			default:
				return nil, fmt.Errorf("record %d: element %s is not a text value", i+1, name)
			}
		}
		records = append(records, record)
	}

	names := columnOrder(decoded, records)
	columns := make([]dataset.Column, len(names))
	for i, name := range names {
		columns[i] = dataset.Column{Name: name, Kind: dataset.Text}
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = record[name]
		}
		rows[i] = row
	}

	ds := dataset.New(columns, rows)
	inferKinds(ds)
	return ds, nil
}

// columnOrder returns the column names in the element order of the first
// record, followed by any names only later records carry, sorted. The map
// decoding loses document order, so a light token scan recovers it.
func columnOrder(data []byte, records []map[string]string) []string {
	var names []string
	seen := make(map[string]bool)

	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	inRecord := false
scan:
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if inRecord && depth == 3 {
				if !seen[t.Name.Local] {
					seen[t.Name.Local] = true
					names = append(names, t.Name.Local)
				}
			}
			if depth == 2 && t.Name.Local == markupRecordTag {
				inRecord = true
			}
		case xml.EndElement:
			depth--
			if inRecord && depth == 1 {
				// First record done; its element order defines the columns.
				break scan
			}
		}
	}

	var extra []string
	for _, record := range records {
		for name := range record {
			if !seen[name] {
				seen[name] = true
				extra = append(extra, name)
			}
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
