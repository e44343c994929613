package tracker

import (
	"slices"
	"strings"
	"time"

	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// Processor filters the raw event stream down to qualifying push activity
// and groups it into one contribution per repository.
type Processor struct {
	targetRepos []string
	targetUsers []string
	log         logze.Logger
}

// NewProcessor creates an end-of-day processor. Empty target lists mean
// "match everything".
func NewProcessor(targetRepos, targetUsers []string) *Processor {
	return &Processor{
		targetRepos: targetRepos,
		targetUsers: targetUsers,
		log:         logze.With("component", "processor"),
	}
}

// Process filters events by type, day window, repository and user, applies
// the per-commit author filter, and groups qualifying commits into
// contributions. Grouping happens in first-seen order, then the result is
// sorted by repository name. An event whose commits are all filtered out
// contributes nothing.
func (p *Processor) Process(events []model.PushEvent, date time.Time) []model.Contribution {
	start := StartOfDay(date)
	end := EndOfDay(date)

	byRepo := make(map[string]int)
	contributions := make([]model.Contribution, 0)

	for _, ev := range events {
		if ev.Type != model.EventTypePush {
			continue
		}
		if ev.CreatedAt.Before(start) || ev.CreatedAt.After(end) {
			continue
		}
		if !p.matchesRepo(ev.Repo) {
			continue
		}
		if !p.matchesUser(ev) {
			continue
		}

		commits := p.filterCommits(ev.Commits)
		if len(commits) == 0 {
			continue
		}

		idx, ok := byRepo[ev.Repo]
		if !ok {
			idx = len(contributions)
			byRepo[ev.Repo] = idx
			contributions = append(contributions, model.Contribution{Repo: ev.Repo})
		}
		contributions[idx].Commits = append(contributions[idx].Commits, commits...)
	}

	slices.SortFunc(contributions, func(a, b model.Contribution) int {
		return strings.Compare(a.Repo, b.Repo)
	})

	return contributions
}

func (p *Processor) matchesRepo(repo string) bool {
	return len(p.targetRepos) == 0 || slices.Contains(p.targetRepos, repo)
}

// matchesUser qualifies an event when any commit author or the event's
// actor login is in the target user list.
func (p *Processor) matchesUser(ev model.PushEvent) bool {
	if len(p.targetUsers) == 0 {
		return true
	}
	if slices.Contains(p.targetUsers, ev.Actor) {
		return true
	}
	for _, c := range ev.Commits {
		if slices.Contains(p.targetUsers, c.Author) {
			return true
		}
	}
	return false
}

func (p *Processor) filterCommits(commits []model.Commit) []model.Commit {
	if len(p.targetUsers) == 0 {
		return commits
	}
	filtered := make([]model.Commit, 0, len(commits))
	for _, c := range commits {
		if slices.Contains(p.targetUsers, c.Author) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// StartOfDay returns midnight of the given local calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of the given local calendar day. Both
// window boundaries are inclusive.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
