package tools

import (
	"embed"
)

// CatalogPath is the location of the tool catalog inside ConfigFiles.
const CatalogPath = "catalog.yaml"

// ConfigFiles embeds the declarative tool catalog.
//
//go:embed catalog.yaml
var ConfigFiles embed.FS
