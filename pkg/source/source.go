// Package source holds the pluggable ingestion adapters. Each adapter reads
// one source kind (delimited file, tagged-markup file, remote spreadsheet)
// and yields raw tabular datasets with source-native column names; renaming
// and value normalization happen downstream.
package source

import (
	"context"

	"datamig/pkg/dataset"
)

// Source is the adapter capability: load exactly one user dataset and
// optionally one dependant dataset. A nil dependant dataset is a valid,
// configured outcome for sources that lack dependant data, not an error.
// Load may block on file or network I/O; the context bounds that I/O.
type Source interface {
	Name() string
	Load(ctx context.Context) (users, dependants *dataset.Dataset, err error)
}
