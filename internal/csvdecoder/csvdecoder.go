// Package csvdecoder turns raw CSV bytes into a header list plus ordered
// rows of string fields. It performs no interpretation of the values; the
// assembler owns that.
package csvdecoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"fjacquet/csv-ofx/internal/parsererror"
)

// utf8BOM is the byte-order mark some exports prepend to UTF-8 CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// supportedDelimiters are the four accepted field delimiters.
var supportedDelimiters = map[rune]bool{
	',':  true,
	';':  true,
	'\t': true,
	'|':  true,
}

// RawRow is one CSV line split into fields, in header order. Rows are
// produced once by Decode and read-only afterwards.
type RawRow []string

// Get returns the trimmed-as-is field at idx, or "" when idx is out of
// range. Padding differences between rows never reach the caller because
// Decode rejects rows whose field count differs from the header.
func (r RawRow) Get(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Document is the decoded form of one CSV file.
type Document struct {
	Headers []string
	Rows    []RawRow
}

// ColumnIndex returns the index of the named header, or -1.
func (d *Document) ColumnIndex(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// IsSupportedDelimiter reports whether the rune is one of the four
// accepted delimiters (comma, semicolon, tab, pipe).
func IsSupportedDelimiter(delimiter rune) bool {
	return supportedDelimiters[delimiter]
}

// Decode parses raw CSV bytes using the caller-supplied delimiter. The
// first row is the header; an empty input fails with HeaderMissingError
// and a row whose field count differs from the header fails with
// MalformedRowError carrying the 1-based line number.
func Decode(data []byte, delimiter rune) (*Document, error) {
	if !IsSupportedDelimiter(delimiter) {
		return nil, &parsererror.MissingRequiredFieldError{Field: "delimiter"}
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	// Field-count validation is done here, against the header, so the
	// error can carry the line number.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &parsererror.HeaderMissingError{}
		}
		return nil, err
	}

	doc := &Document{Headers: headers}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &parsererror.MalformedRowError{
				Line:     line,
				Expected: len(headers),
				Actual:   len(record),
			}
		}
		if len(record) != len(headers) {
			return nil, &parsererror.MalformedRowError{
				Line:     line,
				Expected: len(headers),
				Actual:   len(record),
			}
		}
		doc.Rows = append(doc.Rows, RawRow(record))
	}

	return doc, nil
}
