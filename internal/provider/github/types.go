package github

import (
	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/lang"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

func convertRepositories(repos []*github.Repository) []model.Repository {
	result := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, model.Repository{
			FullName:      r.GetFullName(),
			DefaultBranch: r.GetDefaultBranch(),
			Private:       r.GetPrivate(),
		})
	}
	return result
}

func convertRepositoryCommit(c *github.RepositoryCommit) model.Commit {
	commit := c.GetCommit()
	author := lang.Check(commit.GetAuthor().GetName(), c.GetAuthor().GetLogin())
	return model.NewCommit(
		c.GetSHA(),
		commit.GetMessage(),
		author,
		commit.GetAuthor().GetDate().Time,
	)
}

// convertEvent turns an upstream event into a PushEvent. Non-push events
// and push events without commit payloads are dropped.
func (p *Provider) convertEvent(ev *github.Event) (model.PushEvent, bool) {
	if ev.GetType() != model.EventTypePush {
		return model.PushEvent{}, false
	}

	payload, err := ev.ParsePayload()
	if err != nil {
		p.logger.Debug("skipping event with unparseable payload",
			"type", ev.GetType(), "repo", ev.GetRepo().GetName(), "error", err)
		return model.PushEvent{}, false
	}

	push, ok := payload.(*github.PushEvent)
	if !ok {
		return model.PushEvent{}, false
	}

	createdAt := ev.GetCreatedAt().Time
	commits := make([]model.Commit, 0, len(push.Commits))
	for _, c := range push.Commits {
		// Event payload commits carry no timestamp of their own, so the
		// event creation time stands in for it.
		ts := c.GetTimestamp().Time
		if ts.IsZero() {
			ts = createdAt
		}
		commits = append(commits, model.NewCommit(
			c.GetSHA(),
			c.GetMessage(),
			c.GetAuthor().GetName(),
			ts,
		))
	}

	return model.PushEvent{
		Type:      ev.GetType(),
		Repo:      ev.GetRepo().GetName(),
		Actor:     ev.GetActor().GetLogin(),
		CreatedAt: createdAt,
		Commits:   commits,
	}, true
}
