package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSelectStatement(t *testing.T) {
	tests := []struct {
		statement string
		want      bool
	}{
		{"select * from users", true},
		{"  SELECT 1", true},
		{"\n\tSeLeCt now()", true},
		{"DROP TABLE x", false},
		{"delete from users", false},
		{"with cte as (select 1) select * from cte", false},
		{"", false},
		{"   ", false},
		{"/* comment */ select 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSelectStatement(tt.statement))
		})
	}
}

func TestIsAnalyzeStatement(t *testing.T) {
	tests := []struct {
		statement string
		want      bool
	}{
		{"ANALYZE DELETE u FROM users u JOIN orders o ON o.user_id = u.id", true},
		{"  analyze select * from users", true},
		{"Analyze\n\tUPDATE users SET name = 'x'", true},
		{"select * from users", false},
		{"select analyze from stats", false},
		{"analyzed_rows", false},
		{"FORMAT=TREE select 1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAnalyzeStatement(tt.statement))
		})
	}
}

func TestApplyLimit(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		limit     int
		want      string
	}{
		{
			name:      "appends default",
			statement: "select * from users",
			limit:     100,
			want:      "select * from users LIMIT 100",
		},
		{
			name:      "keeps explicit limit",
			statement: "SELECT * FROM users LIMIT 5",
			limit:     100,
			want:      "SELECT * FROM users LIMIT 5",
		},
		{
			name:      "drops trailing semicolon",
			statement: "select * from users;  ",
			limit:     1000,
			want:      "select * from users LIMIT 1000",
		},
		{
			name:      "zero limit",
			statement: "select 1",
			limit:     0,
			want:      "select 1 LIMIT 0",
		},
		{
			// known weakness: the word inside a literal suppresses the clause
			name:      "limit inside a literal",
			statement: "select * from notes where body = 'no limit'",
			limit:     100,
			want:      "select * from notes where body = 'no limit'",
		},
		{
			// known weakness: the clause lands inside a trailing line comment
			name:      "trailing dash comment",
			statement: "select * from users -- every user",
			limit:     100,
			want:      "select * from users -- every user LIMIT 100",
		},
		{
			name:      "trailing hash comment",
			statement: "select * from users # every user",
			limit:     100,
			want:      "select * from users # every user LIMIT 100",
		},
		{
			name:      "limit inside an identifier",
			statement: "select credit_limit from accounts",
			limit:     100,
			want:      "select credit_limit from accounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyLimit(tt.statement, tt.limit))
		})
	}
}
