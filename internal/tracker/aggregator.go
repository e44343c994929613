package tracker

import (
	"context"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// Aggregator merges the commits of one repository across its sampled
// branches into a single deduplicated list. Merge identity is the full
// commit SHA; the truncated display hash is a separate notion used only
// by the reporter.
type Aggregator struct {
	provider    model.ActivityProvider
	maxBranches int
	log         logze.Logger
}

// NewAggregator creates a commit aggregator.
func NewAggregator(provider model.ActivityProvider, maxBranches int) *Aggregator {
	return &Aggregator{
		provider:    provider,
		maxBranches: maxBranches,
		log:         logze.With("component", "aggregator"),
	}
}

// Aggregate fetches commits in the [since, until] window for every sampled
// branch of the repository, sequentially, and merges them first-seen-wins
// by full SHA. A failed branch fetch never aborts the repository: 404s are
// skipped silently, other failures are logged and skipped.
func (a *Aggregator) Aggregate(ctx context.Context, fullName string, since, until time.Time) ([]model.Commit, error) {
	branches, err := a.provider.ListBranches(ctx, fullName)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list branches")
	}

	sampled := SampleBranches(branches, a.maxBranches)
	if len(sampled) < len(branches) {
		a.log.Debug("sampled branches over cap",
			"repo", fullName, "total", len(branches), "sampled", len(sampled))
	}

	seen := abstract.NewSafeMap[string, struct{}]()
	merged := make([]model.Commit, 0)

	for _, branch := range sampled {
		commits, err := a.provider.ListCommits(ctx, fullName, model.CommitListOptions{
			Since:  since,
			Until:  until,
			Branch: branch.Name,
		})
		if err != nil {
			if errm.Is(err, model.ErrNotFound) {
				continue
			}
			a.log.Debug("failed to fetch branch commits, skipping branch",
				"repo", fullName, "branch", branch.Name, "error", err)
			continue
		}

		for _, commit := range commits {
			if _, ok := seen.Lookup(commit.SHA); ok {
				continue
			}
			seen.Set(commit.SHA, struct{}{})
			merged = append(merged, commit)
		}
	}

	return merged, nil
}
