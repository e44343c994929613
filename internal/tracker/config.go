package tracker

import "github.com/maxbolgarin/lang"

const defaultMaxBranches = 10

// Config carries the pipeline settings for one tracker run.
type Config struct {
	Organization     string
	TargetRepos      []string // normalized owner/name entries
	TargetUsers      []string
	MaxBranches      int
	CheckPreviousDay bool
}

func (c *Config) PrepareAndValidate() error {
	c.MaxBranches = lang.Check(c.MaxBranches, defaultMaxBranches)
	return nil
}
