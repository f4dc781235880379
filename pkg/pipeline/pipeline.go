// Package pipeline runs one source end to end: load the raw datasets, rename
// and validate their columns against the canonical schema, then apply the
// value normalization rules. The pipeline is a free function over the Source
// capability; adapters contribute data, never behavior.
package pipeline

import (
	"context"

	"datamig/pkg/dataset"
	"datamig/pkg/normalize"
	"datamig/pkg/schema"
	"datamig/pkg/source"
)

// Result holds the normalized datasets for one source run. Dependants is nil
// when the source carries no dependant data; the dataset export views treat
// nil as an empty collection.
type Result struct {
	Users      *dataset.Dataset
	Dependants *dataset.Dataset
}

// Run migrates one source. A failure aborts this source's run only; runs for
// other sources are unaffected.
func Run(ctx context.Context, src source.Source, mapping schema.Mapping) (*Result, error) {
	users, dependants, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := schema.ApplyUser(users, mapping.User); err != nil {
		return nil, err
	}

	// Without a declared dependant mapping the dependant stage is skipped
	// entirely; that is a per-source configuration, not an error.
	if !mapping.HasDependant() {
		dependants = nil
	} else if dependants != nil {
		if err := schema.ApplyDependant(dependants, mapping.Dependant); err != nil {
			return nil, err
		}
	}

	if err := normalize.Users(users); err != nil {
		return nil, err
	}
	normalize.Dependants(dependants)

	return &Result{Users: users, Dependants: dependants}, nil
}
