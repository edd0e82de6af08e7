package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/pkg/logger"
)

// ReportsHandler serves the report endpoints.
type ReportsHandler struct {
	reports  Reports
	validate *validator.Validate
	maxBytes int64
	logger   logger.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(reports Reports, maxBytes int64, l logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports:  reports,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		maxBytes: maxBytes,
		logger:   l,
	}
}

// HandleScoreSheet handles POST /v1/reports/score-sheet.
func (h *ReportsHandler) HandleScoreSheet(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_sheet"
	var m match.Match
	if err := decode(w, r, h.maxBytes, h.validate, &m); err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	doc, err := h.reports.RenderScoreSheet(r.Context(), m)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeDocument(w, doc)
}

// HandleWorkbook handles POST /v1/reports/workbook.
func (h *ReportsHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "api.workbook"
	var req divisionRequest
	if err := decode(w, r, h.maxBytes, h.validate, &req); err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	doc, err := h.reports.RenderDivisionWorkbook(r.Context(), req.DivisionName, req.Matches)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeDocument(w, doc)
}

// HandleStandings handles POST /v1/reports/standings.
func (h *ReportsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.standings"
	var req divisionRequest
	if err := decode(w, r, h.maxBytes, h.validate, &req); err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	rows, err := h.reports.DivisionStandings(r.Context(), req.DivisionName, req.Matches)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newStandingsResponse(req.DivisionName, rows))
}

// HandleScoreSheets handles POST /v1/reports/score-sheets.
func (h *ReportsHandler) HandleScoreSheets(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_sheets"
	var req divisionRequest
	if err := decode(w, r, h.maxBytes, h.validate, &req); err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	doc, err := h.reports.RenderScoreSheetArchive(r.Context(), req.DivisionName, req.Matches)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeDocument(w, doc)
}

func (h *ReportsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	fields := []logger.Field{
		logger.String("request_id", RequestID(r.Context())),
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.Error(err),
	}
	if status >= statusInternalError {
		h.logger.Error(r.Context(), "request failed", fields...)
	} else {
		h.logger.Debug(r.Context(), "request rejected", fields...)
	}
	writeError(w, status, code, err)
}
