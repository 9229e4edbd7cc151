package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// closestName returns the candidate nearest to target, if any candidate is
// close enough to plausibly be a typo.
func closestName(candidates []string, target string) (string, bool) {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(c), strings.ToLower(target))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	limit := len(target) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}
