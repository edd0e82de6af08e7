// Package service wires the report renderers together for the HTTP API and
// the command line tools.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/okian/scoresheet/internal/domain/contrast"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/standings"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/archive"
	"github.com/okian/scoresheet/internal/report/scoresheet"
	"github.com/okian/scoresheet/internal/report/workbook"
	"github.com/okian/scoresheet/pkg/logger"
	"github.com/okian/scoresheet/pkg/metrics"
)

// maxArchiveWaiters bounds archive requests queued behind a busy pool;
// beyond it Submit fails with ants.ErrPoolOverload.
const maxArchiveWaiters = 64

// Service renders score sheets, workbooks, standings and archives.
type Service struct {
	mu sync.RWMutex

	renderer *scoresheet.Renderer
	exporter *workbook.Exporter
	validate *validator.Validate
	pool     *ants.Pool

	templateVersion scoresheet.Version
	location        *time.Location
	neutralGuest    contrast.RGB
	archiveWorkers  int
	maxMatches      int

	started bool
	logger  logger.Logger

	sheets          atomic.Int64
	workbooks       atomic.Int64
	tables          atomic.Int64
	archives        atomic.Int64
	integrityErrors atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTemplateVersion selects the score sheet template.
func WithTemplateVersion(v scoresheet.Version) Option {
	return func(s *Service) {
		if v != "" {
			s.templateVersion = v
		}
	}
}

// WithLocation sets the zone printed dates and times use.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithArchiveWorkers sizes the archive rendering pool.
func WithArchiveWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.archiveWorkers = n
		}
	}
}

// WithMaxMatches caps the matches accepted per division request.
func WithMaxMatches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxMatches = n
		}
	}
}

// WithNeutralGuestColor sets the guest swatch used on color clashes.
func WithNeutralGuestColor(c contrast.RGB) Option {
	return func(s *Service) {
		s.neutralGuest = c
	}
}

// New constructs a Service. Renderers are ready immediately; the archive
// pool needs Start.
func New(opts ...Option) *Service {
	s := &Service{
		templateVersion: scoresheet.VersionCurrent,
		location:        time.UTC,
		neutralGuest:    contrast.MustParseHex(scoresheet.DefaultNeutralGuestColor),
		archiveWorkers:  8,
		maxMatches:      500,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("reports")
	s.renderer = scoresheet.NewRenderer(
		scoresheet.WithVersion(s.templateVersion),
		scoresheet.WithLocation(s.location),
		scoresheet.WithNeutralGuestColor(s.neutralGuest),
	)
	s.exporter = workbook.NewExporter(workbook.WithLocation(s.location))
	return s
}

// Start creates the archive pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	pool, err := ants.NewPool(s.archiveWorkers, ants.WithMaxBlockingTasks(maxArchiveWaiters))
	if err != nil {
		return crerr.Wrap(err, "create archive pool")
	}
	s.pool = pool
	s.started = true
	metrics.UpdateArchivePool(0, s.archiveWorkers)
	s.logger.Info(ctx, "report service started",
		logger.String("template", string(s.templateVersion)),
		logger.String("timezone", s.location.String()),
		logger.Int("archive_workers", s.archiveWorkers),
		logger.Int("max_matches", s.maxMatches),
	)
	return nil
}

// Stop releases the archive pool. It is safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.pool.Release()
	s.pool = nil
	s.started = false
	s.logger.Info(context.Background(), "report service stopped")
}

func (s *Service) checkInput(ctx context.Context, m *match.Match) error {
	if err := s.validate.StructCtx(ctx, m); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "match %s", m.ID), ErrInvalidInput)
	}
	return nil
}

func (s *Service) checkDivision(ctx context.Context, division string, matches []match.Match) error {
	if division == "" {
		return crerr.Wrap(ErrInvalidInput, "division name is required")
	}
	if len(matches) > s.maxMatches {
		return crerr.Wrapf(ErrTooManyMatches, "%d matches, limit is %d", len(matches), s.maxMatches)
	}
	for i := range matches {
		if err := s.checkInput(ctx, &matches[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) failed(ctx context.Context, format, op string, err error, fields ...logger.Field) {
	fields = append(fields, logger.String("op", op), logger.Error(err))
	if errors.Is(err, match.ErrDataIntegrity) {
		s.integrityErrors.Add(1)
		metrics.RecordIntegrityError(format)
		metrics.RecordErrorByComponent("app", "data_integrity")
		s.logger.Warn(ctx, "rejected inconsistent match record", fields...)
		return
	}
	metrics.RecordErrorByComponent("app", op)
	s.logger.Error(ctx, "render failed", fields...)
}

func (s *Service) rendered(ctx context.Context, format, kind string, doc report.Document, took time.Duration) {
	metrics.RecordDocument(format, kind, doc.Size(), float64(took.Microseconds())/1000)
	s.logger.Info(ctx, "document rendered",
		logger.String("format", format),
		logger.String("kind", kind),
		logger.String("filename", doc.Filename),
		logger.Int("bytes", doc.Size()),
		logger.Duration("took", took),
	)
}

// RenderScoreSheet renders the HTML score sheet of one match.
func (s *Service) RenderScoreSheet(ctx context.Context, m match.Match) (doc report.Document, err error) {
	ctx, span := startSpan(ctx, "app.Service.RenderScoreSheet",
		attribute.String("match.id", m.ID), attribute.String("match.kind", string(m.Kind)))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return report.Document{}, err
	}
	if err := s.checkInput(ctx, &m); err != nil {
		return report.Document{}, err
	}
	start := time.Now()
	doc, err = s.renderer.Render(m)
	if err != nil {
		s.failed(ctx, metrics.FormatHTML, "score_sheet", err, logger.String("match_id", m.ID))
		return report.Document{}, err
	}
	s.sheets.Add(1)
	s.rendered(ctx, metrics.FormatHTML, string(m.Kind), doc, time.Since(start))
	return doc, nil
}

// RenderDivisionWorkbook renders the two-sheet workbook of a division.
func (s *Service) RenderDivisionWorkbook(ctx context.Context, division string, matches []match.Match) (doc report.Document, err error) {
	ctx, span := startSpan(ctx, "app.Service.RenderDivisionWorkbook",
		attribute.String("division", division), attribute.Int("matches", len(matches)))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return report.Document{}, err
	}
	if err := s.checkDivision(ctx, division, matches); err != nil {
		return report.Document{}, err
	}
	start := time.Now()
	doc, err = s.exporter.Export(division, matches)
	if err != nil {
		s.failed(ctx, metrics.FormatXLSX, "workbook", err, logger.String("division", division))
		return report.Document{}, err
	}
	s.workbooks.Add(1)
	s.rendered(ctx, metrics.FormatXLSX, "", doc, time.Since(start))
	return doc, nil
}

// DivisionStandings returns the ranked table of a division.
func (s *Service) DivisionStandings(ctx context.Context, division string, matches []match.Match) (rows []standings.Row, err error) {
	ctx, span := startSpan(ctx, "app.Service.DivisionStandings",
		attribute.String("division", division), attribute.Int("matches", len(matches)))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkDivision(ctx, division, matches); err != nil {
		return nil, err
	}
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			s.failed(ctx, metrics.FormatJSON, "standings", err, logger.String("division", division))
			return nil, err
		}
	}
	rows = standings.Aggregate(matches)
	s.tables.Add(1)
	metrics.UpdateStandingsRows(len(rows))
	s.logger.Debug(ctx, "standings computed",
		logger.String("division", division),
		logger.Int("teams", len(rows)),
	)
	return rows, nil
}

// RenderScoreSheetArchive renders every match of a division on the archive
// pool and zips the sheets in input order. The first failure aborts the
// archive.
func (s *Service) RenderScoreSheetArchive(ctx context.Context, division string, matches []match.Match) (doc report.Document, err error) {
	ctx, span := startSpan(ctx, "app.Service.RenderScoreSheetArchive",
		attribute.String("division", division), attribute.Int("matches", len(matches)))
	defer func() { endSpan(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return report.Document{}, ErrNotStarted
	}
	if err := s.checkDivision(ctx, division, matches); err != nil {
		return report.Document{}, err
	}

	start := time.Now()
	docs := make([]report.Document, len(matches))
	errs := make([]error, len(matches))

	var wg sync.WaitGroup
	for i := range matches {
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			docs[i], errs[i] = s.renderer.Render(matches[i])
			metrics.RecordArchiveTask()
			metrics.UpdateArchivePool(s.pool.Running(), s.pool.Cap())
		}); err != nil {
			wg.Done()
			wg.Wait()
			return report.Document{}, crerr.Mark(crerr.Wrapf(err, "match %s", matches[i].ID), ErrArchiveRejected)
		}
	}
	wg.Wait()
	metrics.UpdateArchivePool(s.pool.Running(), s.pool.Cap())

	for i, e := range errs {
		if e != nil {
			s.failed(ctx, metrics.FormatZip, "archive", e,
				logger.String("division", division), logger.String("match_id", matches[i].ID))
			return report.Document{}, e
		}
	}
	doc, err = archive.Build(division, docs)
	if err != nil {
		s.failed(ctx, metrics.FormatZip, "archive", err, logger.String("division", division))
		return report.Document{}, err
	}
	s.archives.Add(1)
	s.rendered(ctx, metrics.FormatZip, "", doc, time.Since(start))
	return doc, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"templateVersion": string(s.templateVersion),
		"timezone":        s.location.String(),
		"archiveWorkers":  s.archiveWorkers,
		"maxMatches":      s.maxMatches,
		"scoreSheets":     s.sheets.Load(),
		"workbooks":       s.workbooks.Load(),
		"standingsTables": s.tables.Load(),
		"archives":        s.archives.Load(),
		"integrityErrors": s.integrityErrors.Load(),
	}
	if s.started {
		stats["archiveRunning"] = s.pool.Running()
	}
	metrics.SampleSystem()
	return stats
}
