package saplist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

func TestParse_Success(t *testing.T) {
	header := headerRow("Order", "Description", "Basic&nbsp;start")
	doc := listDoc(
		[]string{
			tbody(header),
			tbody(
				dataRow("4001", "Replace pump&nbsp;seal", "06.06.2020"),
				dataRow(" 4002 ", "Inspect valve", "07.06.2020"),
			),
		},
		[]string{
			tbody(header),
			tbody(dataRow("4003", "Clean exchanger", "08.06.2020")),
		},
	)

	table, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, []string{"Order", "Description", "Basic start"}, table.Header)
	assert.Equal(t, [][]string{
		{"4001", "Replace pump seal", "06.06.2020"},
		{"4002", "Inspect valve", "07.06.2020"},
		{"4003", "Clean exchanger", "08.06.2020"},
	}, table.Rows)
}

func TestParse_SkipsEachTablesFirstBody(t *testing.T) {
	doc := listDoc(
		[]string{tbody(headerRow("Order")), tbody(dataRow("1"))},
		[]string{tbody(dataRow("not data")), tbody(dataRow("2"))},
	)

	table, err := Parse([]byte(doc))
	require.NoError(t, err)

	values, ok := table.Column("Order")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, values)
}

func TestParse_HeaderOnly(t *testing.T) {
	doc := listDoc([]string{tbody(headerRow("Order", "Description"))})

	table, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Description"}, table.Header)
	assert.Equal(t, 0, table.NumRows())
}

func TestParse_MultipleRowsPerBody(t *testing.T) {
	doc := listDoc([]string{
		tbody(headerRow("A", "B")),
		tbody(dataRow("1", "x"), dataRow("2", "y")),
		tbody(dataRow("3", "z")),
	})

	table, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRows())
}

func TestParse_RowWithFewerCells(t *testing.T) {
	doc := listDoc([]string{
		tbody(headerRow("Order", "Description", "Start")),
		tbody(
			dataRow("4001", "Replace seal", "06.06.2020"),
			dataRow("4002", "Inspect valve"),
		),
	})

	table, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, domain.ErrMalformedSourceTable))

	var te *domain.TableError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Table)
	assert.Equal(t, 1, te.Row)
	assert.Equal(t, -1, te.Cell)
}

func TestParse_RowWithMoreCells(t *testing.T) {
	doc := listDoc([]string{
		tbody(headerRow("Order")),
		tbody(dataRow("4001", "extra")),
	})

	_, err := Parse([]byte(doc))
	assert.True(t, errors.Is(err, domain.ErrMalformedSourceTable))
}

func TestParse_LeadingCellMissingLabels(t *testing.T) {
	doc := listDoc([]string{
		tbody(headerRow("Order", "Description")),
		tbody(headerRow("4001", "Replace seal")),
	})

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var te *domain.TableError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Row)
	assert.Equal(t, 0, te.Cell)
}

func TestParse_HeaderCellWithoutLabel(t *testing.T) {
	doc := listDoc([]string{
		tbody("<tr><td><nobr>Order</nobr></td><td>bare</td></tr>"),
	})

	_, err := Parse([]byte(doc))
	assert.True(t, errors.Is(err, domain.ErrMalformedSourceTable))
}

func TestParse_MetadataOnly(t *testing.T) {
	_, err := Parse([]byte(listDoc()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedSourceTable))
}

func TestParse_NotHTMLList(t *testing.T) {
	_, err := Parse([]byte("Order\tDescription\n4001\tSeal\n"))
	assert.True(t, errors.Is(err, domain.ErrMalformedSourceTable))
}

func TestParse_Windows1252(t *testing.T) {
	doc := []byte(`<html><head><meta http-equiv="content-type" content="text/html; charset=windows-1252"></head><body>` +
		`<table class="list"><tbody><tr><td><nobr>meta</nobr></td></tr></tbody></table>` +
		`<table class="list"><tbody><tr><td><nobr>meta</nobr></td></tr></tbody></table>` +
		`<table class="list">` + tbody(headerRow("Location")) + tbody(dataRow("Montr\xe9al")) + `</table></body></html>`)

	table, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Montréal"}}, table.Rows)
}

func TestLayout_CustomSkip(t *testing.T) {
	layout := Layout{SkipTables: 0, FirstCellLabel: 0}
	doc := `<table class="list">` + tbody(headerRow("A")) + tbody(headerRow("1")) + `</table>`

	table, err := layout.Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, table.Rows)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Basic start", clean("  Basic start  "))
	assert.Equal(t, "", clean(" "))
}
