package schemas

import "embed"

// SchemasFS - JSON-схемы событий и ответов API
//
//go:embed events api
var SchemasFS embed.FS
