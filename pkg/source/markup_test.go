package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamig/pkg/dataset"
)

const sampleMarkup = `<?xml version="1.0" encoding="UTF-8"?>
<records>
  <record>
    <user_id>1</user_id>
    <name>Ana</name>
    <email_user>a@x.com</email_user>
    <phone>16981773421</phone>
    <buy_value>2278.54</buy_value>
  </record>
  <record>
    <user_id>2</user_id>
    <name>Bruno</name>
    <email_user>b@x.com</email_user>
    <phone></phone>
    <buy_value>35</buy_value>
  </record>
</records>
`

func TestMarkupFile(t *testing.T) {
	t.Run("Should parse records preserving the document's element order", func(t *testing.T) {
		path := writeFile(t, "users.xml", sampleMarkup)
		src := NewMarkupFile(path, nil)

		users, dependants, err := src.Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, dependants)
		assert.Equal(t,
			[]string{"user_id", "name", "email_user", "phone", "buy_value"},
			users.ColumnNames())
		assert.Equal(t, []string{"1", "Ana", "a@x.com", "16981773421", "2278.54"}, users.Rows[0])
		assert.Equal(t, []string{"2", "Bruno", "b@x.com", "", "35"}, users.Rows[1])
	})

	t.Run("Should type the purchase value column as numeric at ingestion", func(t *testing.T) {
		path := writeFile(t, "users.xml", sampleMarkup)
		src := NewMarkupFile(path, nil)

		users, _, err := src.Load(context.Background())

		require.NoError(t, err)
		idx := users.Index("buy_value")
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, dataset.Numeric, users.Columns[idx].Kind)
	})

	t.Run("Should fail with NotFoundError for a missing file", func(t *testing.T) {
		src := NewMarkupFile(filepath.Join(t.TempDir(), "absent.xml"), nil)

		_, _, err := src.Load(context.Background())

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("Should fail with ReadError for a malformed document", func(t *testing.T) {
		path := writeFile(t, "broken.xml", "<records><record><user_id>1")
		src := NewMarkupFile(path, nil)

		_, _, err := src.Load(context.Background())

		var re *ReadError
		require.ErrorAs(t, err, &re)
	})

	t.Run("Should fail with ReadError when no records are present", func(t *testing.T) {
		path := writeFile(t, "none.xml", "<records></records>")
		src := NewMarkupFile(path, nil)

		_, _, err := src.Load(context.Background())

		var re *ReadError
		require.ErrorAs(t, err, &re)
	})
}
