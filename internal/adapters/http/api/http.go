// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/standings"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/pkg/logger"
)

// Reports is the report service the handlers call.
type Reports interface {
	RenderScoreSheet(ctx context.Context, m match.Match) (report.Document, error)
	RenderDivisionWorkbook(ctx context.Context, division string, matches []match.Match) (report.Document, error)
	DivisionStandings(ctx context.Context, division string, matches []match.Match) ([]standings.Row, error)
	RenderScoreSheetArchive(ctx context.Context, division string, matches []match.Match) (report.Document, error)
}

// Defaults for server options.
const (
	DefaultMaxRequestBytes int64 = 8 << 20
	DefaultRenderTimeout         = 10 * time.Second
)

// Server wires HTTP routes for the report API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	reportsHandler *ReportsHandler

	renderTimeout time.Duration
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxRequestBytes int64
	renderTimeout   time.Duration
	logger          logger.Logger
}

// WithMaxRequestBytes caps request bodies.
func WithMaxRequestBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxRequestBytes = n
		}
	}
}

// WithRenderTimeout bounds each request.
func WithRenderTimeout(d time.Duration) Option {
	return func(c *serverConfig) {
		if d > 0 {
			c.renderTimeout = d
		}
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(reports Reports, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{
		maxRequestBytes: DefaultMaxRequestBytes,
		renderTimeout:   DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		reportsHandler: NewReportsHandler(reports, cfg.maxRequestBytes, cfg.logger.Named("http")),
		renderTimeout:  cfg.renderTimeout,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /v1/reports/score-sheet", MetricsMiddleware(s.reportsHandler.HandleScoreSheet, "score_sheet"))
	mux.HandleFunc("POST /v1/reports/workbook", MetricsMiddleware(s.reportsHandler.HandleWorkbook, "workbook"))
	mux.HandleFunc("POST /v1/reports/standings", MetricsMiddleware(s.reportsHandler.HandleStandings, "standings"))
	mux.HandleFunc("POST /v1/reports/score-sheets", MetricsMiddleware(s.reportsHandler.HandleScoreSheets, "score_sheets"))
}

// Handler wraps mux with tracing, request ids and the render timeout.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	body, _ := sonic.Marshal(errorResponse{Code: "timeout", Message: "render timed out"})
	return TracingMiddleware(RequestIDMiddleware(http.TimeoutHandler(mux, s.renderTimeout, string(body))))
}

// divisionRequest is the body of every division-wide report.
type divisionRequest struct {
	DivisionName string        `json:"division_name" validate:"required"`
	Matches      []match.Match `json:"matches" validate:"dive"`
}

// standingsResponse is the body of POST /v1/reports/standings.
type standingsResponse struct {
	DivisionName string         `json:"division_name"`
	Rows         []standingsRow `json:"rows"`
}

type standingsRow struct {
	Rank int `json:"rank"`
	standings.Row
	Played      int `json:"played"`
	MatchesDiff int `json:"matches_diff"`
	SetsDiff    int `json:"sets_diff"`
	PointsDiff  int `json:"points_diff"`
}

func newStandingsResponse(division string, rows []standings.Row) standingsResponse {
	out := standingsResponse{DivisionName: division, Rows: make([]standingsRow, len(rows))}
	for i, r := range rows {
		out.Rows[i] = standingsRow{
			Rank:        i + 1,
			Row:         r,
			Played:      r.Played(),
			MatchesDiff: r.MatchesDiff(),
			SetsDiff:    r.SetsDiff(),
			PointsDiff:  r.PointsDiff(),
		}
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decode reads at most limit bytes of JSON into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, limit int64, validate *validator.Validate, v any) error {
	const op = "api.decode"
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if crerr.As(err, &tooLarge) {
			return WrapKind(op, ErrPayloadTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	if len(body) == 0 {
		return NewKind(op, ErrBadRequest)
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := validate.StructCtx(r.Context(), v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	body, _ := sonic.Marshal(errorResponse{Code: code, Message: msg})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeDocument(w http.ResponseWriter, doc report.Document) {
	h := w.Header()
	h.Set("Content-Type", doc.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	h.Set("Content-Length", strconv.Itoa(doc.Size()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
