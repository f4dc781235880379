package normalize

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamig/pkg/dataset"
	"datamig/pkg/schema"
)

func moneyDataset(totalKind dataset.Kind, withDiscount bool, rows ...[]string) *dataset.Dataset {
	columns := []dataset.Column{{Name: schema.ColTotal, Kind: totalKind}}
	if withDiscount {
		columns = append(columns, dataset.Column{Name: schema.ColDiscount, Kind: dataset.Text})
	}
	return dataset.New(columns, rows)
}

func TestDeriveDiscountedTotal(t *testing.T) {
	t.Run("Should compute the discounted total from a percent column", func(t *testing.T) {
		ds := moneyDataset(dataset.Text, true, []string{"100,00", "10"})

		require.NoError(t, deriveDiscountedTotal(ds))

		assert.Equal(t, []string{"valor_total", "valor_com_desconto"}, ds.ColumnNames())
		assert.Equal(t, "100", ds.Rows[0][0])
		assert.Equal(t, "90", ds.Rows[0][1])
	})

	t.Run("Should treat the literal dash token as zero discount", func(t *testing.T) {
		ds := moneyDataset(dataset.Text, true, []string{"R$ 250,50", "-"})

		require.NoError(t, deriveDiscountedTotal(ds))

		assert.Equal(t, "250.5", ds.Rows[0][0])
		assert.Equal(t, "250.5", ds.Rows[0][1])
	})

	t.Run("Should copy the total when no discount column exists", func(t *testing.T) {
		ds := moneyDataset(dataset.Numeric, false, []string{"2278.54"})

		require.NoError(t, deriveDiscountedTotal(ds))

		assert.Equal(t, []string{"valor_total", "valor_com_desconto"}, ds.ColumnNames())
		assert.Equal(t, ds.Rows[0][0], ds.Rows[0][1])
	})

	t.Run("Should propagate a conversion error for unexpected tokens", func(t *testing.T) {
		ds := moneyDataset(dataset.Text, true, []string{"abc", "10"})

		err := deriveDiscountedTotal(ds)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "valor_total")
	})
}

func TestFormatMoney(t *testing.T) {
	t.Run("Should render both money columns as comma-decimal text", func(t *testing.T) {
		ds := moneyDataset(dataset.Text, true, []string{"100,00", "10"})
		require.NoError(t, deriveDiscountedTotal(ds))

		require.NoError(t, formatMoney(ds))

		assert.Equal(t, "100,00", ds.Rows[0][0])
		assert.Equal(t, "90,00", ds.Rows[0][1])
		assert.Equal(t, dataset.Text, ds.Columns[0].Kind)
		assert.Equal(t, dataset.Text, ds.Columns[1].Kind)
	})

	t.Run("Should round-trip a canonical comma-decimal value within a cent", func(t *testing.T) {
		ds := moneyDataset(dataset.Text, false, []string{"123,45"})
		require.NoError(t, deriveDiscountedTotal(ds))

		require.NoError(t, formatMoney(ds))
		assert.Equal(t, "123,45", ds.Rows[0][0])

		parsed, err := decimal.NewFromString(strings.ReplaceAll(ds.Rows[0][0], ",", "."))
		require.NoError(t, err)
		diff := parsed.Sub(decimal.RequireFromString("123.45")).Abs()
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.01")))
	})

	t.Run("Should round discounted values to two decimals", func(t *testing.T) {
		// 99.99 * (1 - 7/100) = 92.9907 -> "92,99"
		ds := moneyDataset(dataset.Text, true, []string{"99,99", "7"})
		require.NoError(t, deriveDiscountedTotal(ds))

		require.NoError(t, formatMoney(ds))

		assert.Equal(t, "92,99", ds.Rows[0][1])
	})
}
