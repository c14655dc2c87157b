// Package docs serves the committed OpenAPI document.
package docs

import _ "embed"

//go:embed api.yaml
var openapi []byte

// OpenAPI returns the raw OpenAPI document.
func OpenAPI() []byte {
	return openapi
}
