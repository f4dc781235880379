package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"datamig/pkg/dataset"
)

// DelimitedFile reads a semicolon-delimited text file of user records.
// This source carries no dependant data.
type DelimitedFile struct {
	Path   string
	Comma  rune
	logger *logrus.Logger
}

// NewDelimitedFile builds the adapter for a delimited user file.
func NewDelimitedFile(path string, logger *logrus.Logger) *DelimitedFile {
	return &DelimitedFile{Path: path, Comma: ';', logger: logger}
}

func (f *DelimitedFile) Name() string {
	return f.Path
}

// Load reads and parses the file into a raw user dataset with source-native
// column names. Column kinds are inferred once here, so later stages never
// probe cell values for their type.
func (f *DelimitedFile) Load(_ context.Context) (*dataset.Dataset, *dataset.Dataset, error) {
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

// parse decodes the file bytes to UTF-8 and reads them as delimited text.
// Rows with a mismatched column count are padded or truncated with a logged
// warning rather than aborting the whole file.
func (f *DelimitedFile) parse(data []byte) (*dataset.Dataset, error) {
	decoded, _, err := decodeToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = f.Comma
	// Variable field counts are handled below by pad/truncate.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	rowNum := 1 // header is row 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			f.warnf("row %d: parse error, skipping: %v", rowNum, err)
			continue
		}
		if len(row) < len(headers) {
			f.warnf("row %d: has %d columns, expected %d; padding with empty values", rowNum, len(row), len(headers))
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		} else if len(row) > len(headers) {
			f.warnf("row %d: has %d columns, expected %d; truncating extra columns", rowNum, len(row), len(headers))
			row = row[:len(headers)]
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("file contains no data rows")
	}

	columns := make([]dataset.Column, len(headers))
	for i, h := range headers {
		columns[i] = dataset.Column{Name: h, Kind: dataset.Text}
	}
	ds := dataset.New(columns, rows)
	inferKinds(ds)
	return ds, nil
}

func (f *DelimitedFile) warnf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Warnf(format, args...)
	}
}

// inferKinds marks a column Numeric when every non-blank cell is plain
// dot-decimal text. Formatted money like "100,00" stays Text; the normalize
// stage coerces it explicitly.
func inferKinds(d *dataset.Dataset) {
	for i := range d.Columns {
		numeric := false
		for _, row := range d.Rows {
			s := strings.TrimSpace(row[i])
			if s == "" {
				continue
			}
			if _, err := decimal.NewFromString(s); err != nil {
				numeric = false
				break
			}
			numeric = true
		}
		if numeric {
			d.Columns[i].Kind = dataset.Numeric
		}
	}
}
