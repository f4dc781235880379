package schema

import (
	"datamig/pkg/dataset"
)

// Canonical user column names. Every user dataset must carry all of them
// after mapping, except DiscountedTotal which the normalize stage synthesizes.
const (
	ColID              = "id"
	ColName            = "nome"
	ColEmail           = "email"
	ColPhone           = "telefone"
	ColTotal           = "valor_total"
	ColDiscountedTotal = "valor_com_desconto"
	ColDiscount        = "desconto"
)

// Canonical dependant column names.
const (
	ColUserID      = "usuario_id"
	ColDependantOf = "dependente_de_id"
	ColTimestamp   = "data_hora"
)

// FieldMap declares one source-native column and the canonical name it is
// renamed to. Mappings are ordered so that datasets built from unordered
// sources (e.g. markup documents) get a deterministic column order.
type FieldMap struct {
	Source string
	Target string
}

// Mapping is the declared rename table for one source kind. Dependant is nil
// for sources that carry no dependant data; the dependant stage is then
// skipped entirely.
type Mapping struct {
	User      []FieldMap
	Dependant []FieldMap
}

// HasDependant reports whether this mapping declares dependant columns.
func (m Mapping) HasDependant() bool {
	return len(m.Dependant) > 0
}

// Declared mapping tables, one per source kind.
var (
	// DelimitedMapping covers the delimited-file source. It declares a
	// discount column, so the normalize stage derives the discounted total.
	DelimitedMapping = Mapping{
		User: []FieldMap{
			{Source: "client_id", Target: ColID},
			{Source: "username", Target: ColName},
			{Source: "email_client", Target: ColEmail},
			{Source: "phone_client", Target: ColPhone},
			{Source: "product_value", Target: ColTotal},
			{Source: "discount", Target: ColDiscount},
		},
	}

	// MarkupMapping covers the tagged-markup source: users only, no discount.
	MarkupMapping = Mapping{
		User: []FieldMap{
			{Source: "user_id", Target: ColID},
			{Source: "name", Target: ColName},
			{Source: "email_user", Target: ColEmail},
			{Source: "phone", Target: ColPhone},
			{Source: "buy_value", Target: ColTotal},
		},
	}

	// SpreadsheetMapping covers the remote spreadsheet source, the only one
	// that also carries dependant rows.
	SpreadsheetMapping = Mapping{
		User: []FieldMap{
			{Source: "id", Target: ColID},
			{Source: "nome", Target: ColName},
			{Source: "email", Target: ColEmail},
			{Source: "telefone", Target: ColPhone},
			{Source: "valor", Target: ColTotal},
			{Source: "desconto", Target: ColDiscount},
		},
		Dependant: []FieldMap{
			{Source: "id", Target: ColID},
			{Source: "user_id", Target: ColUserID},
			{Source: "dependente_id", Target: ColDependantOf},
			{Source: "data_hora", Target: ColTimestamp},
		},
	}
)

// ApplyUser renames the user dataset's columns to their canonical names and
// validates that every declared target is present. The discounted-total
// column is exempt: it is synthesized during normalization, so its absence
// before that stage is not an error.
func ApplyUser(d *dataset.Dataset, fields []FieldMap) error {
	return apply(d, fields, DomainUser, map[string]bool{ColDiscountedTotal: true})
}

// ApplyDependant renames and validates the dependant dataset. Failures are
// reported in their own domain so callers can tell bad dependant data apart
// from bad user data.
func ApplyDependant(d *dataset.Dataset, fields []FieldMap) error {
	return apply(d, fields, DomainDependant, nil)
}

// apply renames declared columns in place, then computes the missing-column
// set before touching any row. Unmapped source columns are left as they are.
func apply(d *dataset.Dataset, fields []FieldMap, domain Domain, exempt map[string]bool) error {
	for _, f := range fields {
		d.Rename(f.Source, f.Target)
	}

	var missing []string
	for _, f := range fields {
		if exempt[f.Target] {
			continue
		}
		if !d.Has(f.Target) {
			missing = append(missing, f.Target)
		}
	}
	if len(missing) > 0 {
		return NewValidationError(domain, missing)
	}
	return nil
}
