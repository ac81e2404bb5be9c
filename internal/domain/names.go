package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey is the comparison form of a player or member name: trimmed and
// Unicode case-folded, so "Émile" and "ÉMILE" collide.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
