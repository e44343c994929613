package report

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/config"
	"github.com/thunder-source/git-commit-tracker/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportFilePrefix  = "contributions-"
	summaryFilePrefix = "eod-summary-"
	latestSummaryFile = "eod-summary.txt"

	fileMode = 0o644
	dirMode  = 0o755
)

// Reporter renders contribution lists into console, file and condensed
// summary forms. Input is treated as read-only: every read path works on
// a sorted and deduplicated copy.
type Reporter struct {
	cfg Config
	log logze.Logger
}

// New creates a reporter.
func New(cfg Config) (*Reporter, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Reporter{
		cfg: cfg,
		log: logze.With("component", "reporter"),
	}, nil
}

// Print renders the report to stdout using the configured output format.
func (r *Reporter) Print(contributions []model.Contribution, date time.Time) {
	fmt.Print(r.renderText(sortAndDedup(contributions), date, r.cfg.OutputFormat))
}

// WriteReportFile writes the full report as contributions-<date>.<ext> in
// the output directory, overwriting any previous run for the same date.
// Returns the written path, or empty when file output is disabled.
func (r *Reporter) WriteReportFile(contributions []model.Contribution, date time.Time) (string, error) {
	if r.cfg.NoFiles {
		r.log.Debug("file output disabled, skipping report file")
		return "", nil
	}

	deduped := sortAndDedup(contributions)

	var content string
	switch r.cfg.FileFormat {
	case config.FileJSON:
		data, err := json.MarshalIndent(deduped, "", "  ")
		if err != nil {
			return "", errm.Wrap(err, "failed to marshal report")
		}
		content = string(data) + "\n"
	case config.FileMD:
		content = r.renderMarkdown(deduped, date)
	default:
		content = r.renderText(deduped, date, r.cfg.OutputFormat)
	}

	name := reportFilePrefix + date.Format(time.DateOnly) + "." + string(r.cfg.FileFormat)
	path, err := r.writeFile(name, content)
	if err != nil {
		return "", err
	}
	r.log.Info("report written", "path", path)
	return path, nil
}

// MinimalSummary renders the condensed end-of-day text: one header line
// per repository, one bullet per commit.
func (r *Reporter) MinimalSummary(contributions []model.Contribution, date time.Time) string {
	deduped := sortAndDedup(contributions)

	var b strings.Builder
	fmt.Fprintf(&b, "EOD summary for %s\n", date.Format(time.DateOnly))

	if len(deduped) == 0 {
		b.WriteString("\nNo contributions found.\n")
		return b.String()
	}

	for _, c := range deduped {
		fmt.Fprintf(&b, "\n%s:\n", c.Repo)
		for _, commit := range c.Commits {
			fmt.Fprintf(&b, "• %s (%s)\n", commit.Subject(), commit.Author)
		}
	}
	return b.String()
}

// WriteMinimalSummaryFiles writes the condensed summary twice: a dated
// file and the fixed latest-pointer file consumed by the notifier.
func (r *Reporter) WriteMinimalSummaryFiles(contributions []model.Contribution, date time.Time) error {
	if r.cfg.NoFiles {
		r.log.Debug("file output disabled, skipping summary files")
		return nil
	}

	summary := r.MinimalSummary(contributions, date)

	dated := summaryFilePrefix + date.Format(time.DateOnly) + ".txt"
	if _, err := r.writeFile(dated, summary); err != nil {
		return err
	}
	if _, err := r.writeFile(latestSummaryFile, summary); err != nil {
		return err
	}

	r.log.Info("summary written", "dated", dated, "latest", latestSummaryFile)
	return nil
}

func (r *Reporter) writeFile(name, content string) (string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, dirMode); err != nil {
		return "", errm.Wrap(err, "failed to create output directory")
	}
	path := filepath.Join(r.cfg.OutputDir, name)
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return "", errm.Wrap(err, "failed to write report file")
	}
	return path, nil
}

func (r *Reporter) renderText(contributions []model.Contribution, date time.Time, format config.OutputFormat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contributions for %s\n", date.Format(time.DateOnly))

	if len(contributions) == 0 {
		b.WriteString("\nNo contributions found.\n")
		return b.String()
	}

	for _, c := range contributions {
		fmt.Fprintf(&b, "\n%s (%d %s)\n", c.Repo, len(c.Commits), pluralCommits(len(c.Commits)))
		for _, commit := range c.Commits {
			if format == config.FormatDetailed {
				fmt.Fprintf(&b, "  * %s\n", commit.Hash)
				fmt.Fprintf(&b, "    Author: %s\n", commit.Author)
				fmt.Fprintf(&b, "    Date:   %s\n", commit.Timestamp.Format(time.RFC3339))
				for _, line := range strings.Split(strings.TrimRight(commit.Message, "\n"), "\n") {
					fmt.Fprintf(&b, "    %s\n", line)
				}
			} else {
				fmt.Fprintf(&b, "  * %s %s\n", commit.Hash, commit.Subject())
			}
		}
	}
	return b.String()
}

func (r *Reporter) renderMarkdown(contributions []model.Contribution, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Contributions for %s\n", date.Format(time.DateOnly))

	if len(contributions) == 0 {
		b.WriteString("\nNo contributions found.\n")
		return b.String()
	}

	for _, c := range contributions {
		fmt.Fprintf(&b, "\n## %s\n\n", c.Repo)
		for _, commit := range c.Commits {
			if r.cfg.OutputFormat == config.FormatDetailed {
				fmt.Fprintf(&b, "- `%s` %s (%s, %s)\n",
					commit.Hash, commit.Subject(), commit.Author, commit.Timestamp.Format(time.RFC3339))
			} else {
				fmt.Fprintf(&b, "- `%s` %s\n", commit.Hash, commit.Subject())
			}
		}
	}
	return b.String()
}

// sortAndDedup returns a copy with every contribution's commits sorted by
// descending timestamp and deduplicated by truncated display hash, first
// (most recent) occurrence kept. Applying it twice yields the same result
// as once. The truncated key can in theory collide across repositories;
// commits are scoped per repository here so the risk is accepted.
func sortAndDedup(contributions []model.Contribution) []model.Contribution {
	result := make([]model.Contribution, 0, len(contributions))
	for _, c := range contributions {
		commits := slices.Clone(c.Commits)
		slices.SortStableFunc(commits, func(a, b model.Commit) int {
			return b.Timestamp.Compare(a.Timestamp)
		})

		seen := make(map[string]struct{}, len(commits))
		deduped := make([]model.Commit, 0, len(commits))
		for _, commit := range commits {
			if _, ok := seen[commit.Hash]; ok {
				continue
			}
			seen[commit.Hash] = struct{}{}
			deduped = append(deduped, commit)
		}

		result = append(result, model.Contribution{Repo: c.Repo, Commits: deduped})
	}
	return result
}

func pluralCommits(n int) string {
	if n == 1 {
		return "commit"
	}
	return "commits"
}
