package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataset(t *testing.T) {
	t.Run("Should pad short rows to the column count", func(t *testing.T) {
		ds := New(
			[]Column{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			[][]string{{"1"}, {"2", "3", "4"}},
		)

		assert.Equal(t, []string{"1", "", ""}, ds.Rows[0])
		assert.Equal(t, []string{"2", "3", "4"}, ds.Rows[1])
	})

	t.Run("Should rename a column in place preserving its position", func(t *testing.T) {
		ds := New([]Column{{Name: "a"}, {Name: "b"}}, nil)

		ds.Rename("b", "renamed")

		assert.Equal(t, []string{"a", "renamed"}, ds.ColumnNames())
		assert.Equal(t, 1, ds.Index("renamed"))
		assert.False(t, ds.Has("b"))
	})

	t.Run("Should ignore renaming an absent column", func(t *testing.T) {
		ds := New([]Column{{Name: "a"}}, nil)

		ds.Rename("missing", "other")

		assert.Equal(t, []string{"a"}, ds.ColumnNames())
	})

	t.Run("Should append a column with aligned cells", func(t *testing.T) {
		ds := New([]Column{{Name: "a"}}, [][]string{{"1"}, {"2"}})

		ds.AddColumn(Column{Name: "b", Kind: Numeric}, []string{"10"})

		assert.Equal(t, []string{"a", "b"}, ds.ColumnNames())
		assert.Equal(t, []string{"1", "10"}, ds.Rows[0])
		assert.Equal(t, []string{"2", ""}, ds.Rows[1])
		assert.Equal(t, Numeric, ds.Columns[1].Kind)
	})

	t.Run("Should report -1 for an absent column", func(t *testing.T) {
		ds := New([]Column{{Name: "a"}}, nil)

		assert.Equal(t, -1, ds.Index("missing"))
	})
}
