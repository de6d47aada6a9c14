package db

import (
	"strconv"
	"strings"
)

// Placeholders returns a comma-separated list of 1-indexed positional
// placeholders ("$1,$2,...,$n") for building VALUES or IN clauses, one token
// per element. Returns the empty string for n <= 0.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
