package parquet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

func TestEncoder_Encode(t *testing.T) {
	table := domain.NewTable([]string{"Order", "Basic start"})
	table.AppendRow([]string{"4001", "06.06.2020"})
	table.AppendRow([]string{"4002", "07.06.2020"})

	out, err := New(WithTempDir(t.TempDir())).Encode(table)
	require.NoError(t, err)
	require.Greater(t, len(out), 8)
	assert.Equal(t, "PAR1", string(out[:4]))
	assert.Equal(t, "PAR1", string(out[len(out)-4:]))
}

// readColumns decodes every column of an encoded file.
func readColumns(t *testing.T, content []byte) (int64, [][]interface{}) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetColumnReader(fr, 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	rows := pr.GetNumRows()
	var columns [][]interface{}
	for i := int64(0); i < int64(len(pr.SchemaHandler.ValueColumns)); i++ {
		values, _, _, err := pr.ReadColumnByIndex(i, rows)
		require.NoError(t, err)
		columns = append(columns, values)
	}
	return rows, columns
}

func TestEncoder_EncodeRoundTrip(t *testing.T) {
	table := domain.NewTable([]string{"Order", "Basic start"})
	table.AppendRow([]string{"4001", "06.06.2020"})
	table.AppendRow([]string{"4002", "07.06.2020"})
	table.SetColumn(domain.FilenameColumn, "Carseland 2021/IW38/20200606_Step 1.csv")

	out, err := New(WithTempDir(t.TempDir())).Encode(table)
	require.NoError(t, err)

	rows, columns := readColumns(t, out)
	assert.Equal(t, int64(2), rows)
	require.Len(t, columns, 3)
	assert.Equal(t, []interface{}{"4001", "4002"}, columns[0])
	assert.Equal(t, []interface{}{"06.06.2020", "07.06.2020"}, columns[1])
	assert.Equal(t, []interface{}{
		"Carseland 2021/IW38/20200606_Step 1.csv",
		"Carseland 2021/IW38/20200606_Step 1.csv",
	}, columns[2])
}

func TestEncoder_RejectsEmpty(t *testing.T) {
	e := New()

	_, err := e.Encode(nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = e.Encode(domain.NewTable(nil))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestColumnNames(t *testing.T) {
	got := ColumnNames([]string{"Order", "Basic start", "1st", "Order", "", "Équipe"})
	assert.Equal(t, []string{"Order", "Basic_start", "c_1st", "Order_3", "column", "_quipe"}, got)
}

func TestJSONSchema(t *testing.T) {
	schema, err := jsonSchema([]string{"Order"})
	require.NoError(t, err)
	assert.Contains(t, schema, "name=Order, type=BYTE_ARRAY")
	assert.NotContains(t, schema, "inname")
}

func TestEncoder_Metadata(t *testing.T) {
	e := New(WithParallelism(2))
	assert.Equal(t, domain.FormatParquet, e.Format())
	assert.Equal(t, "parquet", e.Extension())
	assert.Equal(t, int64(2), e.parallelism)
}
