package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridToDataset(t *testing.T) {
	t.Run("Should use the first grid row as the header", func(t *testing.T) {
		grid := [][]any{
			{"id", "nome", "valor"},
			{"1", "Ana", "R$ 100,00"},
			{"2", "Bruno", "R$ 35,00"},
		}

		ds, err := gridToDataset(grid)

		require.NoError(t, err)
		assert.Equal(t, []string{"id", "nome", "valor"}, ds.ColumnNames())
		assert.Equal(t, []string{"1", "Ana", "R$ 100,00"}, ds.Rows[0])
	})

	t.Run("Should pad short rows dropped by the API", func(t *testing.T) {
		grid := [][]any{
			{"id", "telefone"},
			{"1"},
		}

		ds, err := gridToDataset(grid)

		require.NoError(t, err)
		assert.Equal(t, []string{"1", ""}, ds.Rows[0])
	})

	t.Run("Should fail for an empty grid", func(t *testing.T) {
		_, err := gridToDataset(nil)

		require.Error(t, err)
	})
}

func TestSpreadsheetLoad(t *testing.T) {
	t.Run("Should fail with NotFoundError when the credentials file is missing", func(t *testing.T) {
		src := NewSpreadsheet("sheet-id", nil)
		src.CredentialsFile = filepath.Join(t.TempDir(), "credentials.json")

		_, _, err := src.Load(context.Background())

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("Should fail with ReadError for invalid client secrets", func(t *testing.T) {
		src := NewSpreadsheet("sheet-id", nil)
		src.CredentialsFile = writeFile(t, "credentials.json", "not json")

		_, _, err := src.Load(context.Background())

		var re *ReadError
		require.ErrorAs(t, err, &re)
	})
}
