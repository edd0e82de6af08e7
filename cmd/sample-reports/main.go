package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/okian/scoresheet/internal/app"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/report/scoresheet"
	"github.com/okian/scoresheet/internal/sampledata"
	"github.com/okian/scoresheet/pkg/logger"
)

// Default configuration constants.
const (
	defaultSeed    = 1
	defaultTeams   = 6
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		seed     = flag.Int64("seed", defaultSeed, "Generator seed")
		teams    = flag.Int("teams", defaultTeams, "Number of teams")
		kind     = flag.String("kind", string(match.KindIndoor), "Match kind")
		division = flag.String("division", "Sample Division", "Division name")
		out      = flag.String("out", "sample-reports", "Output directory")
		template = flag.String("template", string(scoresheet.VersionCurrent), "Score sheet template version")
		timezone = flag.String("timezone", "UTC", "IANA zone for printed dates and times")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	version, err := scoresheet.ParseVersion(*template)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		os.Stderr.WriteString("unknown timezone: " + err.Error() + "\n")
		os.Exit(2)
	}

	cfg := &sampledata.Config{
		Seed:     *seed,
		Teams:    *teams,
		Kind:     match.Kind(*kind),
		Division: *division,
		OutDir:   *out,
		Template: string(version),
	}

	svc := service.New(
		service.WithTemplateVersion(version),
		service.WithLocation(loc),
	)
	if err := run(cfg, svc); err != nil {
		os.Stderr.WriteString("sample run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(cfg *sampledata.Config, svc *service.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := sampledata.Run(ctx, cfg, svc)
	return err
}
