package match_test

import (
	"errors"
	"testing"

	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/match/matchtest"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() match.Match {
	home := matchtest.Team("t-a", "Alpha", "#1F4294", 0)
	guest := matchtest.Team("t-b", "Bravo", "#E53935", 10)
	return matchtest.Match("m-1", home, guest, 25, 20, 23, 25, 25, 18, 25, 22)
}

func TestKinds(t *testing.T) {
	Convey("Given the closed set of kinds", t, func() {
		Convey("Then every listed kind is valid and has court slots", func() {
			for _, k := range match.Kinds() {
				So(k.Valid(), ShouldBeTrue)
				So(k.CourtSlots(), ShouldBeGreaterThan, 0)
			}
		})

		Convey("And unknown kinds are rejected", func() {
			So(match.Kind("GRASS").Valid(), ShouldBeFalse)
			So(match.Kind("GRASS").CourtSlots(), ShouldEqual, 0)
		})

		Convey("And slot counts follow the discipline", func() {
			So(match.KindIndoor.CourtSlots(), ShouldEqual, 6)
			So(match.KindIndoor4x4.CourtSlots(), ShouldEqual, 4)
			So(match.KindSnow.CourtSlots(), ShouldEqual, 3)
			So(match.KindBeach.CourtSlots(), ShouldEqual, 2)
		})
	})
}

func TestLeagueLabel(t *testing.T) {
	Convey("Given league labels", t, func() {
		So(match.League{Name: "L", Division: "D"}.Label(), ShouldEqual, "L / D")
		So(match.League{Name: "L"}.Label(), ShouldEqual, "L")
		So(match.League{Division: "D"}.Label(), ShouldEqual, "D")
	})
}

func TestMatch_Validate(t *testing.T) {
	Convey("Given a consistent match", t, func() {
		m := fixture()

		Convey("Then validation passes", func() {
			So(m.Validate(), ShouldBeNil)
			So(m.HomeSets, ShouldEqual, 3)
			So(m.GuestSets, ShouldEqual, 1)
		})

		Convey("When a ladder is shorter than the point total", func() {
			m.Sets[1].Ladder = m.Sets[1].Ladder[:10]

			Convey("Then it is a data integrity error", func() {
				err := m.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "set 2")
			})
		})

		Convey("When the ladder length is right but the sides are swapped", func() {
			m.Sets[0].Ladder = matchtest.Ladder(20, 25)

			Convey("Then the per-side count is checked", func() {
				err := m.Validate()
				So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "ladder counts 20-25")
			})
		})

		Convey("When the ladder carries an unknown tag", func() {
			m.Sets[0].Ladder[3] = "X"

			Convey("Then validation fails", func() {
				So(errors.Is(m.Validate(), match.ErrDataIntegrity), ShouldBeTrue)
			})
		})

		Convey("When substitutions go back in time", func() {
			m.Sets[0].HomeSubstitutions = []match.Substitution{
				{PlayerIn: 7, PlayerOut: 1, Score: match.Score{Home: 10, Guest: 8}},
				{PlayerIn: 1, PlayerOut: 7, Score: match.Score{Home: 9, Guest: 9}},
			}

			Convey("Then validation fails", func() {
				err := m.Validate()
				So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "H substitutions")
			})
		})

		Convey("When a timeout is recorded beyond the final score", func() {
			m.Sets[0].GuestTimeouts = []match.Timeout{{Score: match.Score{Home: 26, Guest: 1}}}

			Convey("Then validation fails", func() {
				So(errors.Is(m.Validate(), match.ErrDataIntegrity), ShouldBeTrue)
			})
		})

		Convey("When the final tally disagrees with the sets", func() {
			m.HomeSets = 2

			Convey("Then validation fails", func() {
				err := m.Validate()
				So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "set tally")
			})
		})

		Convey("When the kind is unknown", func() {
			m.Kind = "GRASS"

			Convey("Then validation fails", func() {
				So(errors.Is(m.Validate(), match.ErrDataIntegrity), ShouldBeTrue)
			})
		})
	})
}

func TestLadderFixture(t *testing.T) {
	Convey("Given generated ladders", t, func() {
		for _, tc := range [][2]int{{25, 20}, {0, 25}, {15, 13}, {0, 0}, {30, 28}} {
			ladder := matchtest.Ladder(tc[0], tc[1])
			h, g := 0, 0
			for _, s := range ladder {
				if s == match.Home {
					h++
				} else {
					g++
				}
			}
			So(len(ladder), ShouldEqual, tc[0]+tc[1])
			So(h, ShouldEqual, tc[0])
			So(g, ShouldEqual, tc[1])
		}
	})
}

func TestSetAccessors(t *testing.T) {
	Convey("Given a set", t, func() {
		set := matchtest.Set(0, 25, 23)
		set.GuestSanctions = []match.Sanction{{Player: match.TeamMarker, Card: match.CardWarning}}

		So(set.Winner(), ShouldEqual, match.Home)
		So(set.Points(match.Guest), ShouldEqual, 23)
		So(set.Lineup(match.Guest)[0], ShouldEqual, 11)
		So(set.Sanctions(match.Guest), ShouldHaveLength, 1)
		So(set.Sanctions(match.Home), ShouldBeEmpty)

		level := matchtest.Set(1, 10, 10)
		So(level.Winner(), ShouldEqual, match.Side(""))
	})
}
