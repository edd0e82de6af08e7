// Package standings folds completed matches into a divisional ranking.
package standings

import (
	"sort"

	"github.com/okian/scoresheet/internal/domain/match"
)

// Row is one team's record within a division. Differences are derived on
// read and never stored.
type Row struct {
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	TeamColor      string `json:"team_color"`
	MatchesFor     int    `json:"matches_for"`
	MatchesAgainst int    `json:"matches_against"`
	SetsFor        int    `json:"sets_for"`
	SetsAgainst    int    `json:"sets_against"`
	PointsFor      int    `json:"points_for"`
	PointsAgainst  int    `json:"points_against"`
}

// MatchesDiff is MatchesFor minus MatchesAgainst.
func (r Row) MatchesDiff() int { return r.MatchesFor - r.MatchesAgainst }

// SetsDiff is SetsFor minus SetsAgainst.
func (r Row) SetsDiff() int { return r.SetsFor - r.SetsAgainst }

// PointsDiff is PointsFor minus PointsAgainst.
func (r Row) PointsDiff() int { return r.PointsFor - r.PointsAgainst }

// Played is the number of matches folded into the row.
func (r Row) Played() int { return r.MatchesFor + r.MatchesAgainst }

// Aggregate returns one row per team that played in matches, ranked.
// The result does not depend on the order of matches; the input is not
// modified.
func Aggregate(matches []match.Match) []Row {
	ordered := make([]*match.Match, len(matches))
	for i := range matches {
		ordered[i] = &matches[i]
	}
	// Fold in a canonical order so that team metadata resolves to the
	// latest scheduled match whatever order the caller used.
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.ScheduledAt.Equal(b.ScheduledAt) {
			return a.ScheduledAt.Before(b.ScheduledAt)
		}
		return a.ID < b.ID
	})

	rows := make(map[string]*Row)
	for _, m := range ordered {
		fold(rows, m)
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	Sort(out)
	return out
}

func fold(rows map[string]*Row, m *match.Match) {
	homePoints, guestPoints := 0, 0
	for i := range m.Sets {
		homePoints += m.Sets[i].HomePoints
		guestPoints += m.Sets[i].GuestPoints
	}

	home := rowFor(rows, &m.Home)
	guest := rowFor(rows, &m.Guest)

	if m.HomeSets > m.GuestSets {
		home.MatchesFor++
	} else {
		home.MatchesAgainst++
	}
	if m.GuestSets > m.HomeSets {
		guest.MatchesFor++
	} else {
		guest.MatchesAgainst++
	}

	home.SetsFor += m.HomeSets
	home.SetsAgainst += m.GuestSets
	guest.SetsFor += m.GuestSets
	guest.SetsAgainst += m.HomeSets

	home.PointsFor += homePoints
	home.PointsAgainst += guestPoints
	guest.PointsFor += guestPoints
	guest.PointsAgainst += homePoints
}

func rowFor(rows map[string]*Row, t *match.Team) *Row {
	r, ok := rows[t.ID]
	if !ok {
		r = &Row{TeamID: t.ID}
		rows[t.ID] = r
	}
	r.TeamName = t.Name
	r.TeamColor = t.Color
	return r
}

// Sort orders rows by matches won, set difference and point difference,
// all descending, then by team name and id ascending.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return less(&rows[i], &rows[j])
	})
}

// less reports whether a ranks above b.
func less(a, b *Row) bool {
	if a.MatchesFor != b.MatchesFor {
		return a.MatchesFor > b.MatchesFor
	}
	if a.SetsDiff() != b.SetsDiff() {
		return a.SetsDiff() > b.SetsDiff()
	}
	if a.PointsDiff() != b.PointsDiff() {
		return a.PointsDiff() > b.PointsDiff()
	}
	if a.TeamName != b.TeamName {
		return a.TeamName < b.TeamName
	}
	return a.TeamID < b.TeamID
}
