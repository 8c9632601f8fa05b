package export_test

import (
	"bytes"
	"testing"

	"go-inventory/internal/shared/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX(t *testing.T) {
	buf, err := export.XLSX(export.Table{
		Sheet:   "Departamentos",
		Headers: []string{"ID", "Nome"},
		Rows:    [][]any{{1, "Eletrônicos"}, {2, "Livros"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Departamentos")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID", "Nome"}, {"1", "Eletrônicos"}, {"2", "Livros"}}, rows)
	assert.Equal(t, []string{"Departamentos"}, f.GetSheetList())
}
