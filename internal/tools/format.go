package tools

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Report assembles the single text block returned by a tool.
type Report struct {
	b strings.Builder
}

// NewReport starts a report with a bold title line.
func NewReport(title string) *Report {
	r := &Report{}
	fmt.Fprintf(&r.b, "**%s**\n", title)
	return r
}

// JSON adds a heading followed by v rendered as an indented JSON block.
func (r *Report) JSON(heading string, v any) error {
	body, err := RenderJSON(v)
	if err != nil {
		return err
	}
	r.Code(heading, "json", body)
	return nil
}

// Code adds a heading followed by a fenced code block.
func (r *Report) Code(heading, lang, body string) {
	r.b.WriteString("\n")
	if heading != "" {
		fmt.Fprintf(&r.b, "**%s:**\n", heading)
	}
	fmt.Fprintf(&r.b, "```%s\n%s\n```\n", lang, body)
}

func (r *Report) String() string {
	return strings.TrimRight(r.b.String(), "\n")
}

// RenderJSON marshals rows or a single row with two space indentation.
// Column order is kept because rows are ordered maps.
func RenderJSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}
	return string(out), nil
}

// RowsTitle is the "<label> (N rows)" heading used above result sets.
func RowsTitle(label string, n int) string {
	if n == 1 {
		return label + " (1 row)"
	}
	return fmt.Sprintf("%s (%d rows)", label, n)
}
