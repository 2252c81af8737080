package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Arguments is the validated argument set of one call. Strings are trimmed,
// numbers are float64 within the declared bounds and defaults are filled in.
type Arguments map[string]any

// Decode copies the arguments into a typed input struct using
// `mapstructure` tags.
func (a Arguments) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}

// ValidationError reports an argument that does not satisfy the schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingArgument(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "missing required argument: " + field}
}

func emptyArgument(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("argument %s must not be empty", field)}
}

func wrongType(field, want string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("argument %s must be a %s", field, want)}
}

// Validate checks raw call arguments against the declared parameters.
// Unknown arguments are dropped. A null value counts as absent, as does an
// optional string that is blank after trimming.
func (t *Tool) Validate(raw map[string]any) (Arguments, error) {
	args := make(Arguments, len(t.Parameters))

	for _, p := range t.Parameters {
		v, present := raw[p.Name]
		if present && v == nil {
			present = false
		}

		switch p.Type {
		case TypeString:
			if present {
				s, ok := v.(string)
				if !ok {
					return nil, wrongType(p.Name, "string")
				}
				s = strings.TrimSpace(s)
				if s != "" {
					args[p.Name] = s
					continue
				}
				if p.Required {
					return nil, emptyArgument(p.Name)
				}
			}
			if p.Required {
				return nil, missingArgument(p.Name)
			}
			if s, ok := p.Default.(string); ok {
				args[p.Name] = s
			}

		case TypeNumber:
			if !present {
				if p.Required {
					return nil, missingArgument(p.Name)
				}
				if p.Default == nil {
					continue
				}
				v = p.Default
			}
			n, err := toNumber(v)
			if err != nil {
				return nil, wrongType(p.Name, "number")
			}
			args[p.Name] = p.clamp(n)
		}
	}

	return args, nil
}

func (p Parameter) clamp(n float64) float64 {
	if p.Minimum != nil && n < *p.Minimum {
		n = *p.Minimum
	}
	if p.Maximum != nil && n > *p.Maximum {
		n = *p.Maximum
	}
	return n
}

// toNumber accepts JSON numbers, Go numeric types and numeric strings.
func toNumber(v any) (float64, error) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, err
		}
		n = f
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return n, nil
}
