package model

import (
	"strings"
	"time"
)

// ShortHashLength is the length of the display form of a commit SHA.
// Reports and display-level dedup use the truncated hash; commit merging
// across branches always uses the full SHA.
const ShortHashLength = 7

// Commit represents a git commit that landed on some branch.
type Commit struct {
	SHA       string    `json:"sha"`
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCommit builds a commit with its display hash derived from the full SHA.
func NewCommit(sha, message, author string, ts time.Time) Commit {
	return Commit{
		SHA:       sha,
		Hash:      ShortSHA(sha),
		Message:   message,
		Author:    author,
		Timestamp: ts,
	}
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ShortSHA truncates a full commit SHA to the display form.
func ShortSHA(sha string) string {
	if len(sha) <= ShortHashLength {
		return sha
	}
	return sha[:ShortHashLength]
}

// Contribution groups the commits one repository received during a report
// window. It is built during grouping and only appended to until the
// reporter consumes it.
type Contribution struct {
	Repo    string   `json:"repo"`
	Commits []Commit `json:"commits"`
}
