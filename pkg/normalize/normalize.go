// Package normalize applies the value-level transformation rules to
// schema-validated datasets: phone canonicalization, discount and money
// derivation, and timestamp formatting. All functions are pure over the
// dataset they receive; there is no I/O here.
package normalize

import (
	"datamig/pkg/dataset"
)

// Users applies the user-dataset rules in order: phone canonicalization
// first, then discount derivation, then terminal money formatting. Money
// formatting must run last because it converts numeric cells to display
// text irreversibly.
func Users(d *dataset.Dataset) error {
	if err := formatPhones(d); err != nil {
		return err
	}
	if err := deriveDiscountedTotal(d); err != nil {
		return err
	}
	return formatMoney(d)
}

// Dependants applies the timestamp rule to the dependant dataset. A nil
// dataset is a legitimate configuration for sources without dependant data
// and is a no-op.
func Dependants(d *dataset.Dataset) {
	if d == nil {
		return
	}
	formatTimestamps(d)
}
