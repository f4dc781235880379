package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"datamig/pkg/dataset"
	"datamig/pkg/schema"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// deriveDiscountedTotal computes valor_com_desconto. When the source declared
// a desconto column, the discounted total is valor_total * (1 - desconto/100)
// and the desconto column is renamed in place, preserving its position. When
// it did not, the discounted total is a plain copy of valor_total.
func deriveDiscountedTotal(d *dataset.Dataset) error {
	totalIdx := d.Index(schema.ColTotal)
	if totalIdx < 0 {
		return nil
	}
	totalKind := d.Columns[totalIdx].Kind

	discIdx := d.Index(schema.ColDiscount)
	if discIdx < 0 {
		cells := make([]string, len(d.Rows))
		for i, row := range d.Rows {
			cells[i] = row[totalIdx]
		}
		d.AddColumn(dataset.Column{Name: schema.ColDiscountedTotal, Kind: totalKind}, cells)
		return nil
	}

	discKind := d.Columns[discIdx].Kind
	for i, row := range d.Rows {
		disc, err := coerceDiscount(row[discIdx], discKind)
		if err != nil {
			return fmt.Errorf("row %d: %s: %w", i+1, schema.ColDiscount, err)
		}
		total, err := coerceMoney(row[totalIdx], totalKind)
		if err != nil {
			return fmt.Errorf("row %d: %s: %w", i+1, schema.ColTotal, err)
		}
		row[totalIdx] = total.String()
		row[discIdx] = total.Mul(decimalOne.Sub(disc.Div(decimalHundred))).String()
	}
	d.Columns[totalIdx].Kind = dataset.Numeric
	d.Columns[discIdx].Kind = dataset.Numeric
	d.Rename(schema.ColDiscount, schema.ColDiscountedTotal)
	return nil
}

// formatMoney renders valor_total and valor_com_desconto as fixed 2-decimal
// text with a comma separator (e.g. "999,00"). Formatting is terminal: the
// columns become Text and are not touched again.
func formatMoney(d *dataset.Dataset) error {
	for _, name := range []string{schema.ColTotal, schema.ColDiscountedTotal} {
		idx := d.Index(name)
		if idx < 0 {
			continue
		}
		kind := d.Columns[idx].Kind
		for i, row := range d.Rows {
			v, err := coerceMoney(row[idx], kind)
			if err != nil {
				return fmt.Errorf("row %d: %s: %w", i+1, name, err)
			}
			row[idx] = strings.Replace(v.StringFixed(2), ".", ",", 1)
		}
		d.Columns[idx].Kind = dataset.Text
	}
	return nil
}

// coerceMoney parses a money cell. Numeric cells are already canonical
// dot-decimal text; text cells may carry a currency marker ("R$ 100,00")
// and a comma decimal separator.
func coerceMoney(cell string, kind dataset.Kind) (decimal.Decimal, error) {
	s := strings.TrimSpace(cell)
	if kind == dataset.Text {
		s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// coerceDiscount parses a discount-percent cell. The literal token "-" means
// no discount and coerces to zero.
func coerceDiscount(cell string, kind dataset.Kind) (decimal.Decimal, error) {
	s := strings.TrimSpace(cell)
	if kind == dataset.Text && s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
