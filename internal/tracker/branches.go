package tracker

import (
	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// defaultBranchNames are retained ahead of everything else when sampling.
// main is checked before master; at most one of them takes a slot.
var defaultBranchNames = []string{"main", "master"}

// SampleBranches bounds the branches queried per repository. Below the
// cap the list is returned unchanged. Above it, the default branch is
// retained first and the remaining slots fill in original listing order.
// Listing order is not recency order.
func SampleBranches(branches []model.Branch, maxBranches int) []model.Branch {
	if maxBranches <= 0 || len(branches) <= maxBranches {
		return branches
	}

	sampled := make([]model.Branch, 0, maxBranches)
	taken := make(map[string]struct{}, maxBranches)

	for _, name := range defaultBranchNames {
		for _, b := range branches {
			if b.Name == name {
				sampled = append(sampled, b)
				taken[b.Name] = struct{}{}
				break
			}
		}
		if len(taken) > 0 {
			break
		}
	}

	for _, b := range branches {
		if len(sampled) >= maxBranches {
			break
		}
		if _, ok := taken[b.Name]; ok {
			continue
		}
		sampled = append(sampled, b)
	}

	return sampled
}
