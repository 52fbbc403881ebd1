// Package migrations embeds the goose SQL migrations so both the server
// startup and the test helper can apply them without relying on the
// filesystem layout of the deployment.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
