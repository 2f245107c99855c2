// Package reconcile computes which directory servers the inventory does not
// track yet, and gathers what is needed to register them.
package reconcile

import (
	"github.com/renekerr/sqlinv/internal/util"
)

// Untracked returns the candidates absent from every exclusion list.
// Comparison is case-insensitive, duplicates are dropped, and the order of
// first appearance is preserved.
func Untracked(candidates []string, exclusions ...[]string) []string {
	excluded := make(map[string]bool)
	for _, list := range exclusions {
		for _, name := range list {
			if n := util.NormalizeName(name); n != "" {
				excluded[n] = true
			}
		}
	}

	seen := make(map[string]bool)
	var untracked []string
	for _, name := range candidates {
		n := util.NormalizeName(name)
		if n == "" || seen[n] || excluded[n] {
			continue
		}
		seen[n] = true
		untracked = append(untracked, n)
	}
	return untracked
}
