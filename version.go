package mininotes

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the released version of the library.
var Version = strings.TrimSpace(rawVersion)
