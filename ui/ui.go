// Package ui holds the embedded HTML views.
package ui

import "embed"

//go:embed html/*.html
var Files embed.FS
