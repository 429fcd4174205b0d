// Package web holds the embedded HTML templates for the landing and
// print pages.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
