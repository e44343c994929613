package tracker

import (
	"context"
	"strings"

	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// Resolver determines the working set of repositories to scan: the union
// of the organization's repositories, the account's own repositories and
// the explicitly configured ones, unique by full name. Iteration order is
// not part of the contract; the reporter imposes ordering later.
type Resolver struct {
	provider     model.ActivityProvider
	organization string
	explicit     []string
	log          logze.Logger
}

// NewResolver creates a repository resolver.
func NewResolver(provider model.ActivityProvider, organization string, explicit []string) *Resolver {
	return &Resolver{
		provider:     provider,
		organization: organization,
		explicit:     explicit,
		log:          logze.With("component", "resolver"),
	}
}

// Resolve builds the repository working set. Listing failures are soft:
// the failed source is skipped with a warning and resolution continues
// with whatever succeeded.
func (r *Resolver) Resolve(ctx context.Context) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(r.explicit))

	add := func(fullName string) {
		if _, ok := seen[fullName]; ok {
			return
		}
		seen[fullName] = struct{}{}
		result = append(result, fullName)
	}

	if r.organization != "" {
		repos, err := r.provider.ListOrgRepositories(ctx, r.organization)
		if err != nil {
			r.log.Warn("failed to list organization repositories, skipping source",
				"org", r.organization, "error", err)
		}
		for _, repo := range repos {
			add(repo.FullName)
		}
	}

	repos, err := r.provider.ListUserRepositories(ctx)
	if err != nil {
		r.log.Warn("failed to list account repositories, skipping source", "error", err)
	}
	for _, repo := range repos {
		add(repo.FullName)
	}

	for _, name := range r.explicit {
		if !strings.Contains(name, "/") {
			if r.organization == "" {
				r.log.Warn("ignoring repository without owner prefix", "repo", name)
				continue
			}
			name = r.organization + "/" + name
		}
		add(name)
	}

	return result
}
