// Package api holds the OpenAPI contract for CRM Relay. The document is
// embedded and enforced at runtime by the request-validation middleware.
package api

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3 document.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
