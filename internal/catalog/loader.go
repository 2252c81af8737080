package catalog

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkd-neo4j/mysql-control-bridge/tools"
	"gopkg.in/yaml.v3"
)

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(tools.ConfigFiles, tools.CatalogPath)
}

// LoadFile loads a catalog from the OS filesystem (development and tests).
func LoadFile(path string) (*Catalog, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Load reads and validates the catalog document at path inside fsys.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	slog.Debug("loaded tool catalog", "path", path, "count", c.Len())
	return c, nil
}

// Parse decodes a catalog document and checks its structure.
func Parse(data []byte) (*Catalog, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Tools) == 0 {
		return nil, fmt.Errorf("no tools defined")
	}

	byName := make(map[string]*Tool, len(file.Tools))
	for i, tool := range file.Tools {
		if tool == nil || tool.Name == "" {
			return nil, fmt.Errorf("tool[%d] name is required", i)
		}
		if _, dup := byName[tool.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name '%s'", tool.Name)
		}
		if tool.Description == "" {
			return nil, fmt.Errorf("tool '%s' description is required", tool.Name)
		}
		if tool.Title == "" {
			tool.Title = tool.Name
		}
		if err := validateParameters(tool.Parameters); err != nil {
			return nil, fmt.Errorf("invalid parameters for tool '%s': %w", tool.Name, err)
		}
		byName[tool.Name] = tool
	}

	return &Catalog{tools: file.Tools, byName: byName}, nil
}

// validateParameters validates parameter definitions
func validateParameters(params []Parameter) error {
	names := make(map[string]bool)

	for i, param := range params {
		if param.Name == "" {
			return fmt.Errorf("parameter[%d] name is required", i)
		}

		if names[param.Name] {
			return fmt.Errorf("duplicate parameter name '%s'", param.Name)
		}
		names[param.Name] = true

		switch param.Type {
		case TypeString:
			if param.Minimum != nil || param.Maximum != nil {
				return fmt.Errorf("parameter '%s' is a string and cannot have bounds", param.Name)
			}
			if param.Default != nil {
				if _, ok := param.Default.(string); !ok {
					return fmt.Errorf("parameter '%s' default must be a string", param.Name)
				}
			}
		case TypeNumber:
			if param.Minimum != nil && param.Maximum != nil && *param.Minimum > *param.Maximum {
				return fmt.Errorf("parameter '%s' minimum is greater than maximum", param.Name)
			}
			if param.Default != nil {
				if _, err := toNumber(param.Default); err != nil {
					return fmt.Errorf("parameter '%s' default must be a number", param.Name)
				}
			}
		default:
			return fmt.Errorf("parameter '%s' has invalid type '%s'", param.Name, param.Type)
		}
	}

	return nil
}
