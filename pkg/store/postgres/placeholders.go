package postgres

import (
	"strconv"
	"strings"
)

// placeholders returns "$start, $start+1, ..." for n ordinal parameters.
func placeholders(n, start int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}
