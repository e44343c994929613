package model

import (
	"context"
	"time"
)

// CommitListOptions filters a single-page commit listing.
type CommitListOptions struct {
	Since  time.Time
	Until  time.Time
	Branch string // branch name or SHA ref, empty for the default branch
}

// ActivityProvider defines the read operations needed to reconstruct a
// day of push activity. Every listing call fetches a single page of up
// to 100 results; callers needing more must request further pages
// themselves. No retries are performed at this layer.
type ActivityProvider interface {
	// User operations
	GetCurrentUser(ctx context.Context) (*User, error)
	GetTokenScopes(ctx context.Context) ([]string, error)

	// Repository discovery
	ListOrgRepositories(ctx context.Context, org string) ([]Repository, error)
	ListUserRepositories(ctx context.Context) ([]Repository, error)

	// Per-repository activity
	ListBranches(ctx context.Context, fullName string) ([]Branch, error)
	ListCommits(ctx context.Context, fullName string, opts CommitListOptions) ([]Commit, error)
	ListRepositoryEvents(ctx context.Context, fullName string) ([]PushEvent, error)

	// Event streams per user
	ListUserEvents(ctx context.Context, username string, publicOnly bool) ([]PushEvent, error)
}
