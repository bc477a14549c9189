// Package templates holds the server-rendered pages. Each page defines "content" and is
// parsed together with base.html.
package templates

import "embed"

//go:embed *.html
var Files embed.FS
