package github

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

var _ model.ActivityProvider = (*Provider)(nil)

// pageSize is the single page requested per listing call. Listings do not
// paginate beyond one page, which bounds API cost per run.
const pageSize = 100

// Config holds the credentials for the GitHub API.
type Config struct {
	Token   string
	BaseURL string // for GitHub Enterprise, empty for github.com
}

// Provider implements the ActivityProvider interface over the GitHub REST API.
type Provider struct {
	client *github.Client
	logger logze.Logger
}

// New creates a new GitHub provider.
func New(cfg Config) (*Provider, error) {
	if cfg.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("provider", "github")

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)
	if cfg.BaseURL != "" {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		logger: log,
	}, nil
}

// GetCurrentUser retrieves the authenticated account.
func (p *Provider) GetCurrentUser(ctx context.Context) (*model.User, error) {
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapAPIError(err, "failed to get current user")
	}

	return &model.User{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}, nil
}

// GetTokenScopes returns the OAuth scopes granted to the configured token,
// read from the X-OAuth-Scopes response header.
func (p *Provider) GetTokenScopes(ctx context.Context) ([]string, error) {
	_, resp, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapAPIError(err, "failed to query token scopes")
	}

	header := resp.Header.Get("X-OAuth-Scopes")
	if header == "" {
		return nil, nil
	}

	parts := strings.Split(header, ",")
	scopes := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes, nil
}

// ListOrgRepositories lists one page of an organization's repositories.
func (p *Provider) ListOrgRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	repos, _, err := p.client.Repositories.ListByOrg(ctx, org, &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to list organization repositories")
	}
	return convertRepositories(repos), nil
}

// ListUserRepositories lists one page of repositories accessible to the
// authenticated account.
func (p *Provider) ListUserRepositories(ctx context.Context) ([]model.Repository, error) {
	repos, _, err := p.client.Repositories.List(ctx, "", &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to list user repositories")
	}
	return convertRepositories(repos), nil
}

// ListBranches lists one page of branches for a repository.
func (p *Provider) ListBranches(ctx context.Context, fullName string) ([]model.Branch, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	branches, _, err := p.client.Repositories.ListBranches(ctx, owner, repo, &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to list branches")
	}

	result := make([]model.Branch, 0, len(branches))
	for _, b := range branches {
		result = append(result, model.Branch{
			Name: b.GetName(),
			SHA:  b.GetCommit().GetSHA(),
		})
	}
	return result, nil
}

// ListCommits lists one page of commits in the given window, optionally
// restricted to a branch ref.
func (p *Provider) ListCommits(ctx context.Context, fullName string, opts model.CommitListOptions) ([]model.Commit, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	listOpts := &github.CommitsListOptions{
		SHA:         opts.Branch,
		Since:       opts.Since,
		Until:       opts.Until,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	commits, _, err := p.client.Repositories.ListCommits(ctx, owner, repo, listOpts)
	if err != nil {
		return nil, wrapAPIError(err, "failed to list commits")
	}

	result := make([]model.Commit, 0, len(commits))
	for _, c := range commits {
		result = append(result, convertRepositoryCommit(c))
	}
	return result, nil
}

// ListRepositoryEvents lists one page of events for a repository and keeps
// only the push-type ones.
func (p *Provider) ListRepositoryEvents(ctx context.Context, fullName string) ([]model.PushEvent, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	events, _, err := p.client.Activity.ListRepositoryEvents(ctx, owner, repo, &github.ListOptions{PerPage: pageSize})
	if err != nil {
		return nil, wrapAPIError(err, "failed to list repository events")
	}
	return p.convertEvents(events), nil
}

// ListUserEvents lists one page of events performed by a user. With
// publicOnly set, only events on public repositories are returned.
func (p *Provider) ListUserEvents(ctx context.Context, username string, publicOnly bool) ([]model.PushEvent, error) {
	events, _, err := p.client.Activity.ListEventsPerformedByUser(ctx, username, publicOnly, &github.ListOptions{PerPage: pageSize})
	if err != nil {
		return nil, wrapAPIError(err, "failed to list user events")
	}
	return p.convertEvents(events), nil
}

func (p *Provider) convertEvents(events []*github.Event) []model.PushEvent {
	result := make([]model.PushEvent, 0, len(events))
	for _, ev := range events {
		converted, ok := p.convertEvent(ev)
		if !ok {
			continue
		}
		result = append(result, converted)
	}
	return result
}

func splitFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errm.New("invalid repository name, expected 'owner/name': %s", fullName)
	}
	return parts[0], parts[1], nil
}

// wrapAPIError maps a 404 to model.ErrNotFound so callers can skip missing
// resources silently; everything else keeps the upstream status message.
func wrapAPIError(err error, msg string) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return errm.Wrap(model.ErrNotFound, msg)
	}
	return errm.Wrap(err, msg)
}
