package query

import (
	"strconv"
	"strings"
)

// IsSelectStatement reports whether the trimmed statement starts with
// "select", ignoring case. It is a textual prefix check, not a parser: it
// keeps obvious writes out but is no substitute for a read-only account.
func IsSelectStatement(statement string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(statement)), "select")
}

// IsAnalyzeStatement reports whether the first token is ANALYZE, ignoring
// case and surrounding whitespace.
func IsAnalyzeStatement(statement string) bool {
	fields := strings.Fields(statement)
	return len(fields) > 0 && strings.EqualFold(fields[0], "analyze")
}

// ApplyLimit appends " LIMIT n" unless the statement already mentions
// "limit" anywhere. The check is a plain substring search, so a "limit"
// inside a literal or identifier also suppresses the clause, and a trailing
// line comment swallows the appended clause.
func ApplyLimit(statement string, limit int) string {
	statement = strings.TrimRight(strings.TrimSpace(statement), "; \t\r\n")
	if strings.Contains(strings.ToLower(statement), "limit") {
		return statement
	}
	return statement + " LIMIT " + strconv.Itoa(limit)
}
