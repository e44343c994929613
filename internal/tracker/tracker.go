package tracker

import (
	"context"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/model"
)

// Service runs the contribution aggregation pipeline for a single day:
// resolve repositories, aggregate commits per repository across sampled
// branches, merge in the event streams, then filter and group. Everything
// executes strictly sequentially; a failed repository or user is skipped
// and the run continues with whatever succeeded.
type Service struct {
	provider   model.ActivityProvider
	resolver   *Resolver
	aggregator *Aggregator
	processor  *Processor

	cfg Config
	log logze.Logger
}

// NewService creates the pipeline service.
func NewService(provider model.ActivityProvider, cfg Config) (*Service, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	return &Service{
		provider:   provider,
		resolver:   NewResolver(provider, cfg.Organization, cfg.TargetRepos),
		aggregator: NewAggregator(provider, cfg.MaxBranches),
		processor:  NewProcessor(cfg.TargetRepos, cfg.TargetUsers),
		cfg:        cfg,
		log:        logze.With("component", "tracker"),
	}, nil
}

// Collect runs the pipeline for the given day. When it yields nothing and
// the previous-day fallback is enabled, the whole pipeline re-runs once
// for the prior day. The returned date is the day the report reflects.
func (s *Service) Collect(ctx context.Context, date time.Time) ([]model.Contribution, time.Time, error) {
	contributions, err := s.CollectDay(ctx, date)
	if err != nil {
		return nil, date, err
	}
	if len(contributions) > 0 || !s.cfg.CheckPreviousDay {
		return contributions, date, nil
	}

	previous := date.AddDate(0, 0, -1)
	s.log.Info("no contributions found, checking previous day",
		"date", date.Format(time.DateOnly), "previous", previous.Format(time.DateOnly))

	prevContributions, err := s.CollectDay(ctx, previous)
	if err != nil {
		return nil, date, err
	}
	if len(prevContributions) == 0 {
		return contributions, date, nil
	}
	return prevContributions, previous, nil
}

// CollectDay runs the pipeline once for the given day.
func (s *Service) CollectDay(ctx context.Context, date time.Time) ([]model.Contribution, error) {
	since := StartOfDay(date)
	until := EndOfDay(date)

	repos := s.resolver.Resolve(ctx)
	s.log.Debug("resolved repository working set", "count", len(repos))

	events := make([]model.PushEvent, 0)

	for _, repo := range repos {
		commits, err := s.aggregator.Aggregate(ctx, repo, since, until)
		if err != nil {
			s.log.Warn("failed to aggregate repository commits, skipping repository",
				"repo", repo, "error", err)
		} else {
			for _, commit := range commits {
				events = append(events, commitEvent(repo, commit))
			}
		}

		repoEvents, err := s.provider.ListRepositoryEvents(ctx, repo)
		if err != nil {
			if !errm.Is(err, model.ErrNotFound) {
				s.log.Warn("failed to list repository events, skipping events",
					"repo", repo, "error", err)
			}
			continue
		}
		events = append(events, repoEvents...)
	}

	for _, user := range s.cfg.TargetUsers {
		userEvents, err := s.provider.ListUserEvents(ctx, user, false)
		if err != nil {
			s.log.Warn("failed to list user events, skipping user",
				"user", user, "error", err)
			continue
		}
		events = append(events, userEvents...)
	}

	contributions := s.processor.Process(events, date)
	s.log.Debug("processed events into contributions",
		"events", len(events), "contributions", len(contributions))

	return contributions, nil
}

// commitEvent wraps an aggregated branch commit as a push event so the
// processor applies the same window and author filtering to it.
func commitEvent(repo string, commit model.Commit) model.PushEvent {
	return model.PushEvent{
		Type:      model.EventTypePush,
		Repo:      repo,
		Actor:     commit.Author,
		CreatedAt: commit.Timestamp,
		Commits:   []model.Commit{commit},
	}
}
