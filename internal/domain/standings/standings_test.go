package standings_test

import (
	"testing"
	"time"

	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/match/matchtest"
	"github.com/okian/scoresheet/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	teamA = matchtest.Team("t-a", "Alpha", "#1F4294", 0)
	teamB = matchtest.Team("t-b", "Bravo", "#E53935", 20)
	teamC = matchtest.Team("t-c", "Charlie", "#FFFFFF", 40)
)

func roundRobin() []match.Match {
	ab := matchtest.Match("m-ab", teamA, teamB, 25, 20, 25, 18)
	bc := matchtest.Match("m-bc", teamB, teamC, 25, 23, 20, 25, 15, 10)
	ac := matchtest.Match("m-ac", teamA, teamC, 25, 15, 25, 15)
	ab.ScheduledAt = matchtest.Epoch
	bc.ScheduledAt = matchtest.Epoch.Add(24 * time.Hour)
	ac.ScheduledAt = matchtest.Epoch.Add(48 * time.Hour)
	return []match.Match{ab, bc, ac}
}

func ids(rows []standings.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TeamID
	}
	return out
}

func TestAggregate(t *testing.T) {
	Convey("Given a three-team round robin", t, func() {
		matches := roundRobin()

		Convey("When the table is aggregated", func() {
			rows := standings.Aggregate(matches)

			Convey("Then teams are ranked by matches won", func() {
				So(ids(rows), ShouldResemble, []string{"t-a", "t-b", "t-c"})
			})

			Convey("And each row carries its totals", func() {
				a, b, c := rows[0], rows[1], rows[2]
				So(a.MatchesFor, ShouldEqual, 2)
				So(a.MatchesAgainst, ShouldEqual, 0)
				So(a.SetsFor, ShouldEqual, 4)
				So(a.SetsAgainst, ShouldEqual, 0)
				So(a.PointsFor, ShouldEqual, 100)
				So(a.PointsAgainst, ShouldEqual, 68)
				So(a.PointsDiff(), ShouldEqual, 32)

				So(b.MatchesFor, ShouldEqual, 1)
				So(b.SetsFor, ShouldEqual, 2)
				So(b.SetsAgainst, ShouldEqual, 3)
				So(b.SetsDiff(), ShouldEqual, -1)

				So(c.MatchesFor, ShouldEqual, 0)
				So(c.MatchesAgainst, ShouldEqual, 2)
				So(c.MatchesDiff(), ShouldEqual, -2)
				So(c.SetsFor, ShouldEqual, 1)
				So(c.SetsAgainst, ShouldEqual, 4)
				So(c.Played(), ShouldEqual, 2)
			})
		})

		Convey("When the input order changes", func() {
			want := standings.Aggregate(matches)
			reversed := []match.Match{matches[2], matches[0], matches[1]}
			So(standings.Aggregate(reversed), ShouldResemble, want)

			Convey("Then the input slice is left untouched", func() {
				So(reversed[0].ID, ShouldEqual, "m-ac")
			})
		})

		Convey("When a team is renamed between matches", func() {
			renamed := teamA
			renamed.Name = "Alpha Club"
			late := matchtest.Match("m-late", renamed, teamB, 25, 10, 25, 10)
			late.ScheduledAt = matchtest.Epoch.Add(72 * time.Hour)

			forward := append(roundRobin(), late)
			backward := []match.Match{late, forward[2], forward[1], forward[0]}

			Convey("Then the latest scheduled match wins regardless of order", func() {
				So(standings.Aggregate(forward)[0].TeamName, ShouldEqual, "Alpha Club")
				So(standings.Aggregate(backward)[0].TeamName, ShouldEqual, "Alpha Club")
			})
		})
	})

	Convey("Given no matches", t, func() {
		So(standings.Aggregate(nil), ShouldBeEmpty)
	})
}

func TestSort(t *testing.T) {
	Convey("Given rows level on matches won", t, func() {
		rows := []standings.Row{
			{TeamID: "z", TeamName: "Zulu", MatchesFor: 1, SetsFor: 2, SetsAgainst: 1, PointsFor: 60, PointsAgainst: 50},
			{TeamID: "y", TeamName: "Yankee", MatchesFor: 1, SetsFor: 3, SetsAgainst: 1, PointsFor: 60, PointsAgainst: 70},
			{TeamID: "x", TeamName: "Xray", MatchesFor: 1, SetsFor: 2, SetsAgainst: 1, PointsFor: 70, PointsAgainst: 50},
			{TeamID: "w2", TeamName: "Whiskey", MatchesFor: 0},
			{TeamID: "w1", TeamName: "Whiskey", MatchesFor: 0},
			{TeamID: "v", TeamName: "Victor", MatchesFor: 0},
		}

		standings.Sort(rows)

		Convey("Then set difference beats point difference", func() {
			So(rows[0].TeamID, ShouldEqual, "y")
		})

		Convey("And point difference beats name", func() {
			So(rows[1].TeamID, ShouldEqual, "x")
			So(rows[2].TeamID, ShouldEqual, "z")
		})

		Convey("And fully level rows fall back to name then id", func() {
			So(ids(rows[3:]), ShouldResemble, []string{"v", "w1", "w2"})
		})
	})
}
