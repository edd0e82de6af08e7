// Package workbook exports a division as a two-sheet spreadsheet: every
// match as a pair of colored rows, and the standings table.
package workbook

import (
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/okian/scoresheet/internal/domain/contrast"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/standings"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/filename"
)

// Sheet names.
const (
	MatchesSheet  = "Matches"
	RankingsSheet = "Rankings"
)

// RankingsHeader is the fixed header row of the rankings sheet.
var RankingsHeader = []string{
	"Team",
	"Matches For", "Matches Against", "Matches Diff",
	"Sets For", "Sets Against", "Sets Diff",
	"Points For", "Points Against", "Points Diff",
}

const (
	creator    = "scoresheet"
	dateLayout = "02/01/2006"
)

// Exporter writes division workbooks. It is safe for concurrent use.
type Exporter struct {
	loc *time.Location
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLocation sets the zone match dates are printed in.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewExporter returns an exporter printing dates in UTC.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{loc: time.UTC}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders the matches of one division. Matches keep the caller's
// order on the matches sheet; the rankings sheet is sorted.
func (e *Exporter) Export(division string, matches []match.Match) (report.Document, error) {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return report.Document{}, err
		}
	}
	rows := standings.Aggregate(matches)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	w := &writer{f: f, styles: make(map[string]int)}
	if err := w.build(e, division, matches, rows); err != nil {
		return report.Document{}, crerr.Mark(crerr.Wrapf(err, "division %q", division), ErrBuild)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Document{}, crerr.Mark(crerr.Wrap(err, "write"), ErrBuild)
	}
	body, err := canonicalize(buf.Bytes())
	if err != nil {
		return report.Document{}, err
	}
	return report.Document{
		Filename:    filename.Workbook(division),
		ContentType: report.ContentTypeXLSX,
		Body:        body,
	}, nil
}

type writer struct {
	f      *excelize.File
	styles map[string]int
	header int
}

func (w *writer) build(e *Exporter, division string, matches []match.Match, rows []standings.Row) error {
	if err := w.f.SetSheetName("Sheet1", MatchesSheet); err != nil {
		return err
	}
	if _, err := w.f.NewSheet(RankingsSheet); err != nil {
		return err
	}
	header, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	w.header = header

	if err := w.matches(e, matches); err != nil {
		return crerr.Wrap(err, MatchesSheet)
	}
	if err := w.rankings(rows); err != nil {
		return crerr.Wrap(err, RankingsSheet)
	}
	w.f.SetActiveSheet(0)
	return w.f.SetDocProps(docProps(division, matches))
}

// docProps derives every timestamp from the data so that output depends on
// nothing but the input.
func docProps(division string, matches []match.Match) *excelize.DocProperties {
	var latest time.Time
	for i := range matches {
		if matches[i].ScheduledAt.After(latest) {
			latest = matches[i].ScheduledAt
		}
	}
	if latest.IsZero() {
		latest = time.Unix(0, 0)
	}
	stamp := latest.UTC().Format(time.RFC3339)
	return &excelize.DocProperties{
		Title:          division,
		Creator:        creator,
		LastModifiedBy: creator,
		Created:        stamp,
		Modified:       stamp,
	}
}

func maxSets(matches []match.Match) int {
	n := 0
	for i := range matches {
		if len(matches[i].Sets) > n {
			n = len(matches[i].Sets)
		}
	}
	return n
}

func (w *writer) matches(e *Exporter, matches []match.Match) error {
	sets := maxSets(matches)
	header := []interface{}{"Date", "Team", "Sets"}
	for i := 1; i <= sets; i++ {
		header = append(header, "Set "+strconv.Itoa(i))
	}
	header = append(header, "Total")
	if err := w.row(MatchesSheet, 1, header, w.header); err != nil {
		return err
	}
	lastCol := len(header)

	r := 2
	for i := range matches {
		m := &matches[i]
		date := m.ScheduledAt.In(e.loc).Format(dateLayout)
		for _, side := range []match.Side{match.Home, match.Guest} {
			team := m.Team(side)
			values := []interface{}{date, team.Name, setsWon(m, side)}
			total := 0
			for s := 0; s < sets; s++ {
				if s >= len(m.Sets) {
					values = append(values, "")
					continue
				}
				p := m.Sets[s].Points(side)
				total += p
				values = append(values, p)
			}
			values = append(values, total)

			style, err := w.teamStyle(team.Color)
			if err != nil {
				return err
			}
			if err := w.row(MatchesSheet, r, values, -1); err != nil {
				return err
			}
			if err := w.style(MatchesSheet, r, 1, lastCol, style); err != nil {
				return err
			}
			r++
		}
	}
	return w.f.SetColWidth(MatchesSheet, "B", "B", 28)
}

func setsWon(m *match.Match, side match.Side) int {
	if side == match.Guest {
		return m.GuestSets
	}
	return m.HomeSets
}

func (w *writer) rankings(rows []standings.Row) error {
	header := make([]interface{}, len(RankingsHeader))
	for i, h := range RankingsHeader {
		header[i] = h
	}
	if err := w.row(RankingsSheet, 1, header, w.header); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{
			row.TeamName,
			row.MatchesFor, row.MatchesAgainst, row.MatchesDiff(),
			row.SetsFor, row.SetsAgainst, row.SetsDiff(),
			row.PointsFor, row.PointsAgainst, row.PointsDiff(),
		}
		if err := w.row(RankingsSheet, i+2, values, -1); err != nil {
			return err
		}
		style, err := w.teamStyle(row.TeamColor)
		if err != nil {
			return err
		}
		if err := w.style(RankingsSheet, i+2, 1, 1, style); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(RankingsSheet, "A", "A", 28)
}

// row writes values starting at column A. A negative style leaves the
// default.
func (w *writer) row(sheet string, r int, values []interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return err
	}
	if style < 0 {
		return nil
	}
	return w.style(sheet, r, 1, len(values), style)
}

func (w *writer) style(sheet string, r, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, r)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, r)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, from, to, style)
}

// teamStyle returns the style for a team color, creating it on first use.
func (w *writer) teamStyle(color string) (int, error) {
	bg := contrast.MustParseHex(color)
	key := bg.Hex()
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	style := teamCellStyle(bg)
	id, err := w.f.NewStyle(&style)
	if err != nil {
		return 0, err
	}
	w.styles[key] = id
	return id, nil
}

// teamCellStyle fills a cell with the team color and picks the font color
// with the workbook contrast policy.
func teamCellStyle(bg contrast.RGB) excelize.Style {
	return excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg.Hex()[1:]}},
		Font: &excelize.Font{Color: contrast.WorkbookFont(bg)},
	}
}
