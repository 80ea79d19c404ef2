// Package suggest ranks known command names by edit distance for
// unknown-command diagnostics.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Commands is the known command set, in help order.
var Commands = []string{"view", "schema", "set", "before", "after", "del", "set-null", "copy", "merge", "help"}

// Suggest returns the commands within edit distance max(2, len(typo)/2) of
// typo, closest first. The threshold scales with the typo's length.
func Suggest(typo string) []string {
	type scored struct {
		cmd  string
		dist int
	}
	lower := strings.ToLower(typo)
	threshold := len(typo) / 2
	if threshold < 2 {
		threshold = 2
	}

	var close []scored
	for _, c := range Commands {
		d := levenshtein.ComputeDistance(lower, c)
		if d <= threshold {
			close = append(close, scored{cmd: c, dist: d})
		}
	}
	sort.SliceStable(close, func(i, j int) bool { return close[i].dist < close[j].dist })

	out := make([]string, len(close))
	for i, s := range close {
		out[i] = s.cmd
	}
	return out
}
