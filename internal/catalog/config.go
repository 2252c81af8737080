package catalog

// Parameter types understood by the validator.
const (
	TypeString = "string"
	TypeNumber = "number"
)

// File is the top level of the catalog YAML document.
type File struct {
	Tools []*Tool `yaml:"tools"`
}

// Tool is one declarative catalog entry.
type Tool struct {
	// Name is the unique tool identifier (e.g., "describe_table")
	Name string `yaml:"name"`

	// Title is the human label shown by clients
	Title string `yaml:"title,omitempty"`

	// Description is advertised to the agent during discovery
	Description string `yaml:"description"`

	// Category groups tools for logging and metrics (query, schema, listing)
	Category string `yaml:"category,omitempty"`

	// Parameters defines the typed input arguments
	Parameters []Parameter `yaml:"parameters,omitempty"`
}

// Parameter defines a typed input argument.
type Parameter struct {
	// Name is the argument key in the call request
	Name string `yaml:"name"`

	// Type is either "string" or "number"
	Type string `yaml:"type"`

	Description string `yaml:"description,omitempty"`

	// Required arguments must be present; required strings must also be non-blank
	Required bool `yaml:"required,omitempty"`

	// Default is applied when the argument is absent
	Default any `yaml:"default,omitempty"`

	// Minimum and Maximum clamp numeric arguments
	Minimum *float64 `yaml:"minimum,omitempty"`
	Maximum *float64 `yaml:"maximum,omitempty"`
}
