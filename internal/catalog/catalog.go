package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog is the immutable, ordered set of tool definitions.
type Catalog struct {
	tools  []*Tool
	byName map[string]*Tool
}

// Lookup returns the tool with the given name.
func (c *Catalog) Lookup(name string) (*Tool, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Tools returns the entries in declaration order.
func (c *Catalog) Tools() []*Tool {
	return slices.Clone(c.tools)
}

// Names returns the tool names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		names = append(names, t.Name)
	}
	return names
}

// Len returns the number of tools.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// Bind checks that the given handler names and the catalog entries match
// one to one.
func (c *Catalog) Bind(handlerNames []string) error {
	var unbound, unknown []string

	have := make(map[string]bool, len(handlerNames))
	for _, name := range handlerNames {
		have[name] = true
		if _, ok := c.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	for _, t := range c.tools {
		if !have[t.Name] {
			unbound = append(unbound, t.Name)
		}
	}

	if len(unbound) == 0 && len(unknown) == 0 {
		return nil
	}

	slices.Sort(unknown)
	var parts []string
	if len(unbound) > 0 {
		parts = append(parts, "tools without handler: "+strings.Join(unbound, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "handlers without tool: "+strings.Join(unknown, ", "))
	}
	return fmt.Errorf("catalog binding mismatch: %s", strings.Join(parts, "; "))
}

// MCPTool renders the definition for tools/list. Every catalog tool is
// read-only, idempotent and limited to the configured server.
func (t *Tool) MCPTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(t.Description),
		mcp.WithTitleAnnotation(t.Title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}

	for _, p := range t.Parameters {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Type {
		case TypeString:
			if s, ok := p.Default.(string); ok {
				propOpts = append(propOpts, mcp.DefaultString(s))
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		case TypeNumber:
			if p.Default != nil {
				if n, err := toNumber(p.Default); err == nil {
					propOpts = append(propOpts, mcp.DefaultNumber(n))
				}
			}
			if p.Minimum != nil {
				propOpts = append(propOpts, mcp.Min(*p.Minimum))
			}
			if p.Maximum != nil {
				propOpts = append(propOpts, mcp.Max(*p.Maximum))
			}
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		}
	}

	return mcp.NewTool(t.Name, opts...)
}
