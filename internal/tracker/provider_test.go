package tracker

import (
	"context"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// fakeProvider implements model.ActivityProvider in memory. Commit lists
// are keyed by "repo@branch".
type fakeProvider struct {
	orgRepos   []model.Repository
	userRepos  []model.Repository
	branches   map[string][]model.Branch
	commits    map[string][]model.Commit
	repoEvents map[string][]model.PushEvent
	userEvents map[string][]model.PushEvent

	orgErr    error
	userErr   error
	branchErr map[string]error
	commitErr map[string]error
	eventsErr map[string]error

	commitCalls []string
}

func (f *fakeProvider) GetCurrentUser(context.Context) (*model.User, error) {
	return &model.User{Login: "tester"}, nil
}

func (f *fakeProvider) GetTokenScopes(context.Context) ([]string, error) {
	return []string{"repo"}, nil
}

func (f *fakeProvider) ListOrgRepositories(_ context.Context, org string) ([]model.Repository, error) {
	if f.orgErr != nil {
		return nil, f.orgErr
	}
	return f.orgRepos, nil
}

func (f *fakeProvider) ListUserRepositories(context.Context) ([]model.Repository, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.userRepos, nil
}

func (f *fakeProvider) ListBranches(_ context.Context, fullName string) ([]model.Branch, error) {
	if err := f.branchErr[fullName]; err != nil {
		return nil, err
	}
	return f.branches[fullName], nil
}

func (f *fakeProvider) ListCommits(_ context.Context, fullName string, opts model.CommitListOptions) ([]model.Commit, error) {
	key := fullName + "@" + opts.Branch
	f.commitCalls = append(f.commitCalls, key)
	if err := f.commitErr[key]; err != nil {
		return nil, err
	}

	filtered := make([]model.Commit, 0)
	for _, c := range f.commits[key] {
		if c.Timestamp.Before(opts.Since) || c.Timestamp.After(opts.Until) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

func (f *fakeProvider) ListRepositoryEvents(_ context.Context, fullName string) ([]model.PushEvent, error) {
	if err := f.eventsErr[fullName]; err != nil {
		return nil, err
	}
	return f.repoEvents[fullName], nil
}

func (f *fakeProvider) ListUserEvents(_ context.Context, username string, _ bool) ([]model.PushEvent, error) {
	if err := f.eventsErr["user:"+username]; err != nil {
		return nil, err
	}
	return f.userEvents[username], nil
}
