// Package ofxwriter accumulates finalized transaction records and renders
// them as an OFX 1.0.2 (SGML) credit card statement.
package ofxwriter

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/csv-ofx/internal/assembler"
	"fjacquet/csv-ofx/internal/dateutils"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/parsererror"
)

// sgmlEscaper escapes the three characters with markup meaning in OFX
// element content. OFX 1.x is SGML, not XML, so this is the whole set.
var sgmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Serializer accumulates records and renders the statement document. It is
// a single-owner builder: one goroutine adds records sequentially and
// callers must not share it across goroutines.
type Serializer struct {
	invertValues bool
	records      []models.TransactionRecord
}

// New creates a serializer. When invertValues is set, every subsequently
// added record is stored with its amount negated and its type swapped.
// This is a construction-time policy, not a per-call flag.
func New(invertValues bool) *Serializer {
	return &Serializer{invertValues: invertValues}
}

// Add appends a record to the accumulator, applying the inversion policy.
func (s *Serializer) Add(record models.TransactionRecord) {
	if s.invertValues {
		record = record.Inverted()
	}
	s.records = append(s.records, record)
}

// Len returns the number of accumulated records, deleted ones included.
func (s *Serializer) Len() int {
	return len(s.records)
}

// Records exposes the accumulated records for preview and editing.
func (s *Serializer) Records() []models.TransactionRecord {
	return s.records
}

// SetDeleted toggles the deleted flag on the record at index. Deleted
// records stay in the accumulator but are excluded from rendering and
// balance aggregation.
func (s *Serializer) SetDeleted(index int, deleted bool) error {
	if index < 0 || index >= len(s.records) {
		return &parsererror.MissingRequiredFieldError{Field: "record index"}
	}
	s.records[index].Deleted = deleted
	return nil
}

// Generate renders the OFX document from the accumulated non-deleted
// records. It is idempotent: calling it again with unchanged accumulated
// state produces byte-identical output, so nothing time-dependent is
// emitted (DTSERVER is the period end).
func (s *Serializer) Generate(accountID, bankName, currency string, period models.StatementPeriod, initialBalance decimal.Decimal) (string, error) {
	if strings.TrimSpace(accountID) == "" {
		return "", &parsererror.MissingRequiredFieldError{Field: "account_id"}
	}
	if strings.TrimSpace(currency) == "" {
		return "", &parsererror.MissingRequiredFieldError{Field: "currency"}
	}
	if period.IsZero() || period.Start.After(period.End) {
		return "", &parsererror.MissingRequiredFieldError{Field: "period"}
	}

	// Stable sort keeps insertion order for same-date records, so output
	// is deterministic.
	live := make([]models.TransactionRecord, 0, len(s.records))
	for _, r := range s.records {
		if !r.Deleted {
			live = append(live, r)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Date.Before(live[j].Date)
	})

	summary := assembler.CalculateBalanceSummary(live, initialBalance)

	var b strings.Builder

	writeHeader(&b)

	b.WriteString("<OFX>\n")
	writeSignOn(&b, bankName, period)

	b.WriteString("<CREDITCARDMSGSRSV1>\n")
	b.WriteString("<CCSTMTTRNRS>\n")
	writeLine(&b, "TRNUID", "1")
	writeStatus(&b)
	b.WriteString("<CCSTMTRS>\n")
	writeLine(&b, "CURDEF", currency)
	b.WriteString("<CCACCTFROM>\n")
	writeLine(&b, "ACCTID", accountID)
	b.WriteString("</CCACCTFROM>\n")

	b.WriteString("<BANKTRANLIST>\n")
	writeLine(&b, "DTSTART", dateutils.ToOFXDate(period.Start))
	writeLine(&b, "DTEND", dateutils.ToOFXDate(period.End))
	for _, r := range live {
		writeTransaction(&b, r)
	}
	b.WriteString("</BANKTRANLIST>\n")

	b.WriteString("<LEDGERBAL>\n")
	writeLine(&b, "BALAMT", summary.Final.StringFixed(2))
	writeLine(&b, "DTASOF", dateutils.ToOFXDate(period.End))
	b.WriteString("</LEDGERBAL>\n")

	b.WriteString("<AVAILBAL>\n")
	writeLine(&b, "BALAMT", summary.Initial.StringFixed(2))
	writeLine(&b, "DTASOF", dateutils.ToOFXDate(period.Start))
	b.WriteString("</AVAILBAL>\n")

	b.WriteString("</CCSTMTRS>\n")
	b.WriteString("</CCSTMTTRNRS>\n")
	b.WriteString("</CREDITCARDMSGSRSV1>\n")
	b.WriteString("</OFX>\n")

	return b.String(), nil
}

// writeHeader emits the fixed OFX 1.0.2 declaration block.
func writeHeader(b *strings.Builder) {
	b.WriteString("OFXHEADER:100\n")
	b.WriteString("DATA:OFXSGML\n")
	b.WriteString("VERSION:102\n")
	b.WriteString("SECURITY:NONE\n")
	b.WriteString("ENCODING:UTF-8\n")
	b.WriteString("CHARSET:NONE\n")
	b.WriteString("COMPRESSION:NONE\n")
	b.WriteString("OLDFILEUID:NONE\n")
	b.WriteString("NEWFILEUID:NONE\n")
	b.WriteString("\n")
}

func writeSignOn(b *strings.Builder, bankName string, period models.StatementPeriod) {
	b.WriteString("<SIGNONMSGSRSV1>\n")
	b.WriteString("<SONRS>\n")
	writeStatus(b)
	writeLine(b, "DTSERVER", dateutils.ToOFXDate(period.End))
	writeLine(b, "LANGUAGE", "ENG")
	if bankName != "" {
		b.WriteString("<FI>\n")
		writeLine(b, "ORG", bankName)
		b.WriteString("</FI>\n")
	}
	b.WriteString("</SONRS>\n")
	b.WriteString("</SIGNONMSGSRSV1>\n")
}

func writeStatus(b *strings.Builder) {
	b.WriteString("<STATUS>\n")
	writeLine(b, "CODE", "0")
	writeLine(b, "SEVERITY", "INFO")
	b.WriteString("</STATUS>\n")
}

func writeTransaction(b *strings.Builder, r models.TransactionRecord) {
	b.WriteString("<STMTTRN>\n")
	writeLine(b, "TRNTYPE", string(r.Type))
	writeLine(b, "DTPOSTED", dateutils.ToOFXDate(r.Date))
	writeLine(b, "TRNAMT", r.Amount.StringFixed(2))
	writeLine(b, "FITID", r.ID)
	writeLine(b, "MEMO", models.TruncateDescription(r.Description))
	b.WriteString("</STMTTRN>\n")
}

// writeLine emits an OFX leaf element. Leaf tags are unclosed in the 1.x
// SGML dialect.
func writeLine(b *strings.Builder, tag, value string) {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(sgmlEscaper.Replace(value))
	b.WriteString("\n")
}
