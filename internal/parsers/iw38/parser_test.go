package iw38

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

const export = `<html><body>
<table class="list"><tbody><tr><td><nobr>IW38</nobr></td></tr></tbody></table>
<table class="list"><tbody><tr><td><nobr>Variant /TA</nobr></td></tr></tbody></table>
<table class="list">
<tbody><tr><td><nobr>Order</nobr></td><td><nobr>Plant</nobr></td></tr></tbody>
<tbody><tr><td><nobr></nobr><nobr></nobr><nobr>4001</nobr></td><td><nobr>CS01</nobr></td></tr></tbody>
</table>
</body></html>`

func TestNew(t *testing.T) {
	p := New()
	assert.Equal(t, "IW38", p.Transaction())
	assert.Equal(t, []string{"IW38_01"}, p.Variants())
}

func TestParse_V1(t *testing.T) {
	table, err := New().Parse([]byte(export), "IW38_01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Plant"}, table.Header)
	assert.Equal(t, [][]string{{"4001", "CS01"}}, table.Rows)
}

func TestParse_UnknownVersion(t *testing.T) {
	_, err := New().Parse([]byte(export), "IW38_07")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFunctionVariant))
}
