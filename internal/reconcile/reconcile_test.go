package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntracked(t *testing.T) {
	candidates := []string{"SRSQL01PRO", "SRSQL02PRE", "SRSQL03DES", "SROLAP01PRO", "SRREVIEW01"}
	tracked := []string{"SRSQL01PRO"}
	olap := []string{"SROLAP01PRO"}
	review := []string{"SRREVIEW01"}

	got := Untracked(candidates, tracked, olap, review)
	assert.Equal(t, []string{"SRSQL02PRE", "SRSQL03DES"}, got)
}

func TestUntrackedCaseInsensitive(t *testing.T) {
	got := Untracked(
		[]string{"srsql01pro", "SRSQL02PRE"},
		[]string{"SrSql01Pro"},
	)
	assert.Equal(t, []string{"SRSQL02PRE"}, got)
}

func TestUntrackedDeduplicates(t *testing.T) {
	got := Untracked([]string{"SRSQL01PRO", "srsql01pro ", "SRSQL02PRE"})
	assert.Equal(t, []string{"SRSQL01PRO", "SRSQL02PRE"}, got)
}

func TestUntrackedOverlappingExclusions(t *testing.T) {
	// The exclusion lists are not required to be disjoint.
	got := Untracked(
		[]string{"SRSQL01PRO", "SRSQL02PRE"},
		[]string{"SRSQL01PRO"},
		[]string{"SRSQL01PRO"},
	)
	assert.Equal(t, []string{"SRSQL02PRE"}, got)
}

func TestUntrackedEmptyCandidates(t *testing.T) {
	assert.Empty(t, Untracked(nil, []string{"SRSQL01PRO"}))
}

func TestUntrackedBlankEntriesIgnored(t *testing.T) {
	got := Untracked([]string{"", "  ", "SRSQL01PRO"}, []string{""})
	assert.Equal(t, []string{"SRSQL01PRO"}, got)
}
