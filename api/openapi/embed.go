// Package openapi embeds the OpenAPI documents served by the host API.
package openapi

import "embed"

//go:embed v1/courtside.yaml
var FS embed.FS
