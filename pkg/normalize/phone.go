package normalize

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"datamig/pkg/dataset"
	"datamig/pkg/schema"
)

// Phone numbers without an international prefix are assumed Brazilian.
const phoneRegion = "BR"

// PhoneError reports the first phone value that could not be parsed.
// The whole batch is aborted on the first failure; a bad phone number in a
// migration is a data problem that needs fixing at the source, not skipping.
type PhoneError struct {
	Row   int
	Value string
	Err   error
}

func (e *PhoneError) Error() string {
	return fmt.Sprintf("row %d: cannot parse phone number %q: %v", e.Row, e.Value, e.Err)
}

func (e *PhoneError) Unwrap() error { return e.Err }

// formatPhones rewrites every non-blank telefone cell as E.164
// (+<countrycode><number>). Blank cells pass through untouched: an absent
// phone stays absent, it is never synthesized.
func formatPhones(d *dataset.Dataset) error {
	idx := d.Index(schema.ColPhone)
	if idx < 0 {
		return nil
	}
	for i, row := range d.Rows {
		value := row[idx]
		if strings.TrimSpace(value) == "" {
			continue
		}
		num, err := phonenumbers.Parse(value, phoneRegion)
		if err != nil {
			return &PhoneError{Row: i + 1, Value: value, Err: err}
		}
		row[idx] = phonenumbers.Format(num, phonenumbers.E164)
	}
	return nil
}
