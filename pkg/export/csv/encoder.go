package csv

import (
	"strings"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
)

// Encode renders rows as comma separated text. The header is the key list of
// the first row and every row is read in that key order; keys a row lacks
// print as empty cells. Lines are joined with "\n" and zero rows yield "".
func Encode(rows []domain.ReportRow) string {
	if len(rows) == 0 {
		return ""
	}

	keys := rows[0].Keys()

	var b strings.Builder
	writeLine(&b, keys)
	for _, row := range rows {
		b.WriteByte('\n')
		cells := make([]string, len(keys))
		for i, k := range keys {
			cells[i] = row.Get(k)
		}
		writeLine(&b, cells)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(c))
	}
}

// Escape quotes a cell containing a comma, a double quote or a line break,
// doubling any inner quotes. Other cells are returned verbatim.
func Escape(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
