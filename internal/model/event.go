package model

import "time"

// EventTypePush is the upstream event type that carries commits.
const EventTypePush = "PushEvent"

// User represents a GitHub account.
type User struct {
	Login string
	Name  string
	Email string
}

// Repository represents a repository visible to the authenticated account.
type Repository struct {
	FullName      string
	DefaultBranch string
	Private       bool
}

// Branch represents a branch of a repository.
type Branch struct {
	Name string
	SHA  string
}

// PushEvent is a single push-like record from the upstream event stream,
// or a synthetic event derived from a branch commit listing. It is
// ephemeral: filtered and converted into contributions, then discarded.
type PushEvent struct {
	Type      string
	Repo      string
	Actor     string
	CreatedAt time.Time
	Commits   []Commit
}
