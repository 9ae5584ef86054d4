package csvdecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/parsererror"
)

func TestDecode(t *testing.T) {
	data := []byte("Date,Amount,Description\n2025-10-01,-100.50,Grocery\n2025-10-02,250.00,Salary\n")

	doc, err := Decode(data, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Amount", "Description"}, doc.Headers)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "Grocery", doc.Rows[0].Get(2))
	assert.Equal(t, "250.00", doc.Rows[1].Get(1))
}

func TestDecodeDelimiters(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		delimiter rune
	}{
		{"Comma", "a,b\n1,2\n", ','},
		{"Semicolon", "a;b\n1;2\n", ';'},
		{"Tab", "a\tb\n1\t2\n", '\t'},
		{"Pipe", "a|b\n1|2\n", '|'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode([]byte(tc.data), tc.delimiter)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, doc.Headers)
			require.Len(t, doc.Rows, 1)
			assert.Equal(t, "2", doc.Rows[0].Get(1))
		})
	}
}

func TestDecodeUnsupportedDelimiter(t *testing.T) {
	_, err := Decode([]byte("a:b\n1:2\n"), ':')
	require.Error(t, err)
	var fieldErr *parsererror.MissingRequiredFieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestDecodeStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n2025-10-01,1.00\n")...)

	doc, err := Decode(data, ',')
	require.NoError(t, err)
	assert.Equal(t, "Date", doc.Headers[0])
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode([]byte(""), ',')
	require.Error(t, err)
	var headerErr *parsererror.HeaderMissingError
	assert.ErrorAs(t, err, &headerErr)
}

func TestDecodeMalformedRow(t *testing.T) {
	data := []byte("Date,Amount,Description\n2025-10-01,-100.50,Grocery\n2025-10-02,250.00\n")

	_, err := Decode(data, ',')
	require.Error(t, err)
	var rowErr *parsererror.MalformedRowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line, "the header is line 1")
	assert.Equal(t, 3, rowErr.Expected)
	assert.Equal(t, 2, rowErr.Actual)
}

func TestDecodeQuotedFields(t *testing.T) {
	data := []byte("Date,Amount,Description\n2025-10-01,-10.00,\"Coffee, beans\"\n")

	doc, err := Decode(data, ',')
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Coffee, beans", doc.Rows[0].Get(2))
}

func TestDecodeHeaderOnly(t *testing.T) {
	doc, err := Decode([]byte("Date,Amount\n"), ',')
	require.NoError(t, err)
	assert.Empty(t, doc.Rows)
}

func TestRawRowGet(t *testing.T) {
	row := RawRow{"a", "b"}
	assert.Equal(t, "a", row.Get(0))
	assert.Equal(t, "", row.Get(-1))
	assert.Equal(t, "", row.Get(5))
}

func TestDocumentColumnIndex(t *testing.T) {
	doc := &Document{Headers: []string{"Date", "Amount"}}
	assert.Equal(t, 1, doc.ColumnIndex("Amount"))
	assert.Equal(t, -1, doc.ColumnIndex("Missing"))
}
