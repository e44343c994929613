package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

// Output formats for console rendering.
type OutputFormat string

const (
	FormatSimple   OutputFormat = "simple"
	FormatDetailed OutputFormat = "detailed"
)

// File formats for the full report file.
type FileFormat string

const (
	FileTXT  FileFormat = "txt"
	FileJSON FileFormat = "json"
	FileMD   FileFormat = "md"
)

const (
	// TargetDateToday selects the current calendar day.
	TargetDateToday = "TODAY"

	dateLayout        = "2006-01-02"
	defaultOutputDir  = "reports"
	defaultMaxBranch  = 10
	defaultFileFormat = FileTXT
)

// Config is the process-wide application configuration. It is read once
// at startup and passed into component constructors; no component reads
// ambient process state directly.
type Config struct {
	Token        string   `env:"GITHUB_TOKEN"`
	TargetRepos  []string `env:"TARGET_REPOS"`
	TargetUsers  []string `env:"TARGET_USERS"`
	Organization string   `env:"GITHUB_ORG"`

	TargetDate       string `env:"TARGET_DATE"`
	CheckPreviousDay bool   `env:"CHECK_PREVIOUS_DAY"`

	OutputFormat OutputFormat `env:"OUTPUT_FORMAT"`
	FileFormat   FileFormat   `env:"FILE_FORMAT"`
	NoFiles      bool         `env:"NO_FILES"`
	OutputDir    string       `env:"OUTPUT_DIR"`

	MaxBranches int  `env:"MAX_BRANCHES"`
	Debug       bool `env:"DEBUG"`

	Notifier NotifierConfig
}

// NotifierConfig holds credentials for the outbound messaging transport.
// The notifier is disabled unless all fields are set.
type NotifierConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
	ToNumber   string `env:"TWILIO_TO_NUMBER"`
}

// Load reads configuration from the optional .env file and the process
// environment. Validation happens separately in PrepareAndValidate, after
// CLI flag overrides are applied.
func Load(envFile string) (Config, error) {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load(lang.Check(envFile, ".env"))

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errm.Wrap(err, "read environment")
	}
	return cfg, nil
}

// PrepareAndValidate applies defaults and normalizes target repository
// names to the owner/name form. Short names require an organization to
// expand into; without one the configuration is rejected before any
// network call is made.
func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return ErrMissingToken
	}

	c.TargetDate = lang.Check(c.TargetDate, TargetDateToday)
	c.OutputFormat = lang.Check(c.OutputFormat, FormatSimple)
	c.FileFormat = lang.Check(c.FileFormat, defaultFileFormat)
	c.OutputDir = lang.Check(c.OutputDir, defaultOutputDir)
	c.MaxBranches = lang.Check(c.MaxBranches, defaultMaxBranch)

	switch c.OutputFormat {
	case FormatSimple, FormatDetailed:
	default:
		return errm.Wrap(ErrInvalidOutputFormat, string(c.OutputFormat))
	}

	switch c.FileFormat {
	case FileTXT, FileJSON, FileMD:
	default:
		return errm.Wrap(ErrInvalidFileFormat, string(c.FileFormat))
	}

	if c.TargetDate != TargetDateToday {
		if _, err := time.ParseInLocation(dateLayout, c.TargetDate, time.Local); err != nil {
			return errm.Wrap(ErrInvalidTargetDate, c.TargetDate)
		}
	}

	normalized := make([]string, 0, len(c.TargetRepos))
	for _, repo := range c.TargetRepos {
		repo = strings.TrimSpace(repo)
		if repo == "" {
			continue
		}
		if !strings.Contains(repo, "/") {
			if c.Organization == "" {
				return errm.Wrap(ErrInvalidRepoFormat, repo)
			}
			repo = c.Organization + "/" + repo
		}
		normalized = append(normalized, repo)
	}
	c.TargetRepos = normalized

	return nil
}

// Date resolves the configured target date in the local time zone.
func (c *Config) Date() time.Time {
	if c.TargetDate == TargetDateToday {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}
	// Validated in PrepareAndValidate.
	t, _ := time.ParseInLocation(dateLayout, c.TargetDate, time.Local)
	return t
}
