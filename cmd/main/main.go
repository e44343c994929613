package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"

	"github.com/thunder-source/git-commit-tracker/internal/app"
	"github.com/thunder-source/git-commit-tracker/internal/config"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	envFile      = kingpin.Flag("env-file", "path to .env file").Short('e').Default(".env").String()
	date         = kingpin.Flag("date", "target date in YYYY-MM-DD form, overrides TARGET_DATE").String()
	outputFormat = kingpin.Flag("output-format", "console format: simple or detailed").String()
	fileFormat   = kingpin.Flag("output", "report file format: txt, json or md").String()
	noFiles      = kingpin.Flag("no-files", "disable all file output").Bool()
)

func main() {
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	applyFlags(&cfg)

	logze.Init(logze.C().WithConsole().WithLevel(lang.If(cfg.Debug, logze.LevelDebug, logze.LevelInfo)))

	tracker, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new tracker")
	}

	if err := tracker.Run(ctx); err != nil {
		return erro.Wrap(err, "run tracker")
	}

	return nil
}

// applyFlags overrides environment configuration with CLI flags.
func applyFlags(cfg *config.Config) {
	if *date != "" {
		cfg.TargetDate = *date
	}
	if *outputFormat != "" {
		cfg.OutputFormat = config.OutputFormat(*outputFormat)
	}
	if *fileFormat != "" {
		cfg.FileFormat = config.FileFormat(*fileFormat)
	}
	if *noFiles {
		cfg.NoFiles = true
	}
}
