package docs

import (
	_ "embed"
)

// ServerInstructions is sent to clients during initialization. It tells the
// model how to explore the schema before querying.
//
//go:embed prompts/server_instructions.md
var ServerInstructions string
