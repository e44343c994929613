package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunder-source/git-commit-tracker/internal/config"
	"github.com/thunder-source/git-commit-tracker/internal/model"
)

var reportDay = time.Date(2024, 5, 14, 0, 0, 0, 0, time.Local)

func newTestReporter(t *testing.T, cfg Config) *Reporter {
	t.Helper()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func contribution(repo string, commits ...model.Commit) model.Contribution {
	return model.Contribution{Repo: repo, Commits: commits}
}

func commitAt(sha, message, author string, hour int) model.Commit {
	return model.NewCommit(sha, message, author, reportDay.Add(time.Duration(hour)*time.Hour))
}

func TestSortAndDedupOrdersByDescendingTimestamp(t *testing.T) {
	early := commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "early", "alice", 9)
	late := commitAt("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "late", "alice", 17)

	result := sortAndDedup([]model.Contribution{contribution("acme/api", early, late)})

	require.Len(t, result, 1)
	require.Len(t, result[0].Commits, 2)
	assert.Equal(t, "late", result[0].Commits[0].Message)
	assert.Equal(t, "early", result[0].Commits[1].Message)
}

func TestSortAndDedupRemovesDuplicateHashes(t *testing.T) {
	// Same truncated hash arriving from the branch scan and the event
	// stream must collapse into one line.
	fromBranch := commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "work", "alice", 10)
	fromEvent := commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "work", "alice", 10)

	result := sortAndDedup([]model.Contribution{contribution("acme/api", fromBranch, fromEvent)})

	require.Len(t, result, 1)
	assert.Len(t, result[0].Commits, 1)
}

func TestSortAndDedupIsIdempotent(t *testing.T) {
	input := []model.Contribution{contribution("acme/api",
		commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "one", "alice", 9),
		commitAt("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "two", "bob", 12),
		commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "one", "alice", 9),
	)}

	once := sortAndDedup(input)
	twice := sortAndDedup(once)

	assert.Equal(t, once, twice)
}

func TestSortAndDedupDoesNotMutateInput(t *testing.T) {
	early := commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "early", "alice", 9)
	late := commitAt("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "late", "alice", 17)
	input := []model.Contribution{contribution("acme/api", early, late)}

	sortAndDedup(input)

	assert.Equal(t, "early", input[0].Commits[0].Message, "caller's slice must stay untouched")
}

func TestMinimalSummaryFormat(t *testing.T) {
	r := newTestReporter(t, Config{})

	summary := r.MinimalSummary([]model.Contribution{
		contribution("acme/api",
			commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "fix login flow\n\nlonger body", "alice", 10)),
	}, reportDay)

	assert.Contains(t, summary, "EOD summary for 2024-05-14")
	assert.Contains(t, summary, "acme/api:")
	assert.Contains(t, summary, "• fix login flow (alice)")
	assert.NotContains(t, summary, "longer body", "summary shows subjects only")
}

func TestMinimalSummaryEmpty(t *testing.T) {
	r := newTestReporter(t, Config{})

	summary := r.MinimalSummary(nil, reportDay)

	assert.Equal(t, "EOD summary for 2024-05-14\n\nNo contributions found.\n", summary)
}

func TestWriteReportFileJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, Config{FileFormat: config.FileJSON, OutputDir: dir})

	contributions := []model.Contribution{
		contribution("acme/api", commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "work", "alice", 10)),
	}

	path, err := r.WriteReportFile(contributions, reportDay)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "contributions-2024-05-14.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []model.Contribution
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "acme/api", decoded[0].Repo)
	require.Len(t, decoded[0].Commits, 1)
	assert.Equal(t, "aaaaaaa", decoded[0].Commits[0].Hash)
}

func TestWriteReportFileText(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, Config{OutputDir: dir})

	path, err := r.WriteReportFile([]model.Contribution{
		contribution("acme/api", commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "fix login flow", "alice", 10)),
	}, reportDay)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Contributions for 2024-05-14")
	assert.Contains(t, content, "acme/api (1 commit)")
	assert.Contains(t, content, "  * aaaaaaa fix login flow")
}

func TestWriteReportFileMarkdown(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, Config{FileFormat: config.FileMD, OutputDir: dir})

	path, err := r.WriteReportFile([]model.Contribution{
		contribution("acme/api", commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "fix login flow", "alice", 10)),
	}, reportDay)
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Contributions for 2024-05-14")
	assert.Contains(t, content, "## acme/api")
	assert.Contains(t, content, "- `aaaaaaa` fix login flow")
}

func TestWriteMinimalSummaryFiles(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, Config{OutputDir: dir})

	err := r.WriteMinimalSummaryFiles([]model.Contribution{
		contribution("acme/api", commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "work", "alice", 10)),
	}, reportDay)
	require.NoError(t, err)

	dated, err := os.ReadFile(filepath.Join(dir, "eod-summary-2024-05-14.txt"))
	require.NoError(t, err)
	latest, err := os.ReadFile(filepath.Join(dir, "eod-summary.txt"))
	require.NoError(t, err)

	assert.Equal(t, dated, latest, "latest pointer mirrors the dated file")
}

func TestNoFilesModeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, Config{NoFiles: true, OutputDir: dir})

	contributions := []model.Contribution{
		contribution("acme/api", commitAt("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "work", "alice", 10)),
	}

	path, err := r.WriteReportFile(contributions, reportDay)
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, r.WriteMinimalSummaryFiles(contributions, reportDay))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
