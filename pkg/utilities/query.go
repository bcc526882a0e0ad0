package utilities

import "strings"

// SafeOrderClause builds an ORDER BY fragment from untrusted input. allowed
// maps accepted sortBy values to real column names; anything else silently
// falls back to the fallback column, so no caller-supplied string ever
// reaches the SQL text. order accepts asc/desc case-insensitively and
// defaults to ASC.
func SafeOrderClause(allowed map[string]string, sortBy, order, fallback string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = fallback
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}
