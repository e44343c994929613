package app

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/config"
	"github.com/thunder-source/git-commit-tracker/internal/model"
	"github.com/thunder-source/git-commit-tracker/internal/notify"
	"github.com/thunder-source/git-commit-tracker/internal/provider/github"
	"github.com/thunder-source/git-commit-tracker/internal/report"
	"github.com/thunder-source/git-commit-tracker/internal/tracker"
)

// Tracker is the main service that orchestrates all components: it runs
// the aggregation pipeline for the target day, renders the reports and
// hands the condensed summary to the notifier.
type Tracker struct {
	provider model.ActivityProvider
	service  *tracker.Service
	reporter *report.Reporter
	notifier notify.Notifier

	cfg config.Config
	log logze.Logger
}

// New creates the application service. Configuration is validated here,
// before any network call is made.
func New(ctx context.Context, cfg config.Config) (*Tracker, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	t := &Tracker{
		cfg: cfg,
		log: logze.With("component", "app"),
	}
	if err := t.init(cfg); err != nil {
		return nil, erro.Wrap(err, "failed to initialize service")
	}

	return t, nil
}

// Run executes one full report run: collect, report, notify.
func (t *Tracker) Run(ctx context.Context) error {
	timer := abstract.StartTimer()

	if t.cfg.Debug {
		t.logTokenInfo(ctx)
	}

	contributions, reportDate, err := t.service.Collect(ctx, t.cfg.Date())
	if err != nil {
		return erro.Wrap(err, "collect contributions")
	}

	t.reporter.Print(contributions, reportDate)

	if _, err := t.reporter.WriteReportFile(contributions, reportDate); err != nil {
		return erro.Wrap(err, "write report file")
	}
	if err := t.reporter.WriteMinimalSummaryFiles(contributions, reportDate); err != nil {
		return erro.Wrap(err, "write summary files")
	}

	summary := t.reporter.MinimalSummary(contributions, reportDate)
	if err := t.notifier.Send(ctx, summary); err != nil {
		// The report is already on disk, delivery failure is not fatal.
		t.log.Warn("failed to deliver summary", "error", err)
	}

	t.log.Info("run finished",
		"date", reportDate.Format(time.DateOnly),
		"repositories", len(contributions),
		"elapsed", timer.ElapsedTime().String())
	return nil
}

func (t *Tracker) init(cfg config.Config) (err error) {
	t.provider, err = github.New(github.Config{Token: cfg.Token})
	if err != nil {
		return erro.Wrap(err, "failed to create GitHub provider")
	}

	t.service, err = tracker.NewService(t.provider, tracker.Config{
		Organization:     cfg.Organization,
		TargetRepos:      cfg.TargetRepos,
		TargetUsers:      cfg.TargetUsers,
		MaxBranches:      cfg.MaxBranches,
		CheckPreviousDay: cfg.CheckPreviousDay,
	})
	if err != nil {
		return erro.Wrap(err, "failed to create tracker service")
	}

	t.reporter, err = report.New(report.Config{
		OutputFormat: cfg.OutputFormat,
		FileFormat:   cfg.FileFormat,
		OutputDir:    cfg.OutputDir,
		NoFiles:      cfg.NoFiles,
	})
	if err != nil {
		return erro.Wrap(err, "failed to create reporter")
	}

	if notify.IsConfigured(cfg.Notifier) {
		t.notifier, err = notify.NewWhatsApp(cfg.Notifier)
		if err != nil {
			return erro.Wrap(err, "failed to create notifier")
		}
	} else {
		t.notifier = notify.NewNopNotifier()
	}

	return nil
}

// logTokenInfo surfaces the authenticated identity and token scopes in
// debug mode so report provenance is visible in the logs.
func (t *Tracker) logTokenInfo(ctx context.Context) {
	user, err := t.provider.GetCurrentUser(ctx)
	if err != nil {
		t.log.Debug("failed to get authenticated user", "error", err)
	} else {
		t.log.Debug("authenticated", "login", user.Login)
	}

	scopes, err := t.provider.GetTokenScopes(ctx)
	if err != nil {
		t.log.Debug("failed to query token scopes", "error", err)
	} else {
		t.log.Debug("token scopes", "scopes", strings.Join(scopes, ","))
	}
}
