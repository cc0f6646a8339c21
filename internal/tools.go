//go:build tools

// Package internal pins versions of developer tooling so `go mod tidy`
// does not drop them from go.sum. None of these are imported by the
// programs in this module.
package internal

import (
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/stringer"
)
