// Package export serializes entry sets for download. Encoders produce
// in-memory output only; writing files is the presentation layer's job.
package export

import (
	"strconv"
	"strings"

	"tally/internal/core"
)

// CSVHeader is the fixed column order of the CSV form.
const CSVHeader = "id,name,amount,type,date,category"

// CSV encodes the entries as newline-joined rows after a header row,
// preserving input order. Every field is double-quoted; embedded quotes
// are escaped by doubling, the format's single escaping rule. Amounts
// carry exactly two decimals.
func CSV(entries []core.Entry) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, e := range entries {
		b.WriteByte('\n')
		fields := []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Amount.String(),
			string(e.Type),
			e.Date,
			e.Category,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// Filename returns the conventional export file name for the given
// day, e.g. transactions_2024-01-10.csv.
func Filename(day, ext string) string {
	return "transactions_" + day + "." + ext
}
