// Package schemas содержит JSON Schema тел входящих запросов.
package schemas

import "embed"

//go:embed requests
var SchemasFS embed.FS
