package main

import "embed"

// configFS carries the default tuning and stages inside the binary
//
//go:embed configs
var configFS embed.FS
