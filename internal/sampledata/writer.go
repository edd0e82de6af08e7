package sampledata

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/standings"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// StandingsFile is the JSON ranking written next to the workbook.
const StandingsFile = "standings.json"

// Reports renders the documents a run writes.
type Reports interface {
	RenderScoreSheet(ctx context.Context, m match.Match) (report.Document, error)
	RenderDivisionWorkbook(ctx context.Context, division string, matches []match.Match) (report.Document, error)
	DivisionStandings(ctx context.Context, division string, matches []match.Match) ([]standings.Row, error)
}

// Run generates the division described by cfg and writes its workbook,
// standings and one score sheet per match into cfg.OutDir.
func Run(ctx context.Context, cfg *Config, reports Reports) (Stats, error) {
	stats := Stats{}
	start := time.Now()

	matches, err := Division(cfg)
	if err != nil {
		return stats, err
	}
	stats.Matches = len(matches)
	logger.Get().Info(ctx, "generated division",
		logger.String("division", cfg.Division),
		logger.String("kind", string(cfg.Kind)),
		logger.Int("teams", cfg.Teams),
		logger.Int("matches", len(matches)),
		logger.Int64("seed", cfg.Seed),
		logger.String("template", cfg.Template))

	if err := os.MkdirAll(cfg.OutDir, directoryPermission); err != nil {
		return stats, crerr.Mark(crerr.Wrapf(err, "create %s", cfg.OutDir), ErrWrite)
	}

	book, err := reports.RenderDivisionWorkbook(ctx, cfg.Division, matches)
	if err != nil {
		return stats, err
	}
	if err := writeDocument(cfg.OutDir, book, &stats); err != nil {
		return stats, err
	}

	rows, err := reports.DivisionStandings(ctx, cfg.Division, matches)
	if err != nil {
		return stats, err
	}
	table, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
	if err != nil {
		return stats, crerr.Wrap(err, "encode standings")
	}
	if err := writeDocument(cfg.OutDir, report.Document{Filename: StandingsFile, Body: table}, &stats); err != nil {
		return stats, err
	}

	for i := range matches {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		sheet, err := reports.RenderScoreSheet(ctx, matches[i])
		if err != nil {
			return stats, err
		}
		if err := writeDocument(cfg.OutDir, sheet, &stats); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	logger.Get().Info(ctx, "sample reports written",
		logger.String("dir", cfg.OutDir),
		logger.Int("documents", stats.Documents),
		logger.Int64("bytes", stats.Bytes),
		logger.Duration("took", stats.Duration))
	return stats, nil
}

func writeDocument(dir string, doc report.Document, stats *Stats) error {
	path := filepath.Join(dir, filepath.Base(doc.Filename))
	if err := os.WriteFile(path, doc.Body, filePermission); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "write %s", path), ErrWrite)
	}
	stats.Documents++
	stats.Bytes += int64(doc.Size())
	return nil
}
