// Package matchtest builds consistent match records for tests.
package matchtest

import (
	"strconv"
	"time"

	"github.com/okian/scoresheet/internal/domain/match"
)

// Epoch is the default kickoff used by fixtures: 2024-01-02 18:30 UTC.
var Epoch = time.Date(2024, time.January, 2, 18, 30, 0, 0, time.UTC)

// Ladder interleaves home and guest points so that neither side runs far
// ahead of its final ratio. The result always has home+guest entries.
func Ladder(home, guest int) []match.Side {
	out := make([]match.Side, 0, home+guest)
	h, g := 0, 0
	for h < home || g < guest {
		switch {
		case h == home:
			out = append(out, match.Guest)
			g++
		case g == guest:
			out = append(out, match.Home)
			h++
		case h*guest <= g*home:
			out = append(out, match.Home)
			h++
		default:
			out = append(out, match.Guest)
			g++
		}
	}
	return out
}

// Set returns a set with the given score, a matching ladder and full
// six-slot lineups. Start is offset from Epoch by index*30 minutes and each
// set lasts 25 minutes and 1 second.
func Set(index, home, guest int) match.Set {
	start := Epoch.Add(time.Duration(index) * 30 * time.Minute)
	end := start.Add(25*time.Minute + time.Second)
	return match.Set{
		StartTime:    start.UnixMilli(),
		EndTime:      end.UnixMilli(),
		HomePoints:   home,
		GuestPoints:  guest,
		Ladder:       Ladder(home, guest),
		FirstServing: match.Home,
		HomeLineup:   match.Lineup{1, 2, 3, 4, 5, 6},
		GuestLineup:  match.Lineup{11, 12, 13, 14, 15, 16},
	}
}

// Team returns a team with a twelve-player roster: numbers base+1..base+10
// as regular players and base+11, base+12 as liberos.
func Team(id, name, color string, base int) match.Team {
	players := make([]match.Player, 0, 12)
	for n := base + 1; n <= base+12; n++ {
		players = append(players, match.Player{
			Number: n,
			Name:   name + " player " + strconv.Itoa(n),
			Libero: n > base+10,
		})
	}
	return match.Team{
		ID:          id,
		Name:        name,
		Color:       color,
		LiberoColor: "#FFEB3B",
		Captain:     base + 1,
		Players:     players,
	}
}

// Match assembles an indoor match from set scores given as home/guest
// pairs, e.g. Match("m1", home, guest, 25, 20, 25, 18).
func Match(id string, home, guest match.Team, scores ...int) match.Match {
	m := match.Match{
		ID:          id,
		ScheduledAt: Epoch,
		Kind:        match.KindIndoor,
		League:      match.League{Name: "Regional League", Division: "Division A"},
		Home:        home,
		Guest:       guest,
		Rules:       match.Rules{TeamTimeouts: true, Sanctions: true, SetsToWin: 3, PointsPerSet: 25, TieBreakPoints: 15},
	}
	for i := 0; i+1 < len(scores); i += 2 {
		set := Set(i/2, scores[i], scores[i+1])
		m.Sets = append(m.Sets, set)
		switch set.Winner() {
		case match.Home:
			m.HomeSets++
		case match.Guest:
			m.GuestSets++
		}
	}
	return m
}
