package report

import (
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/thunder-source/git-commit-tracker/internal/config"
)

const defaultOutputDir = "reports"

// Config controls rendering and file output.
type Config struct {
	OutputFormat config.OutputFormat
	FileFormat   config.FileFormat
	OutputDir    string
	NoFiles      bool
}

func (c *Config) PrepareAndValidate() error {
	c.OutputFormat = lang.Check(c.OutputFormat, config.FormatSimple)
	c.FileFormat = lang.Check(c.FileFormat, config.FileTXT)
	c.OutputDir = lang.Check(c.OutputDir, defaultOutputDir)

	switch c.OutputFormat {
	case config.FormatSimple, config.FormatDetailed:
	default:
		return errm.New("invalid output format: %s", c.OutputFormat)
	}
	switch c.FileFormat {
	case config.FileTXT, config.FileJSON, config.FileMD:
	default:
		return errm.New("invalid file format: %s", c.FileFormat)
	}
	return nil
}
