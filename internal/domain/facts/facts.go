// Package facts projects a match record into the flat figures renderers
// need. Every function is read-only over the record.
package facts

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/okian/scoresheet/internal/domain/match"
)

const msPerMinute = 60_000

// Facts is a read-only view over one match.
type Facts struct {
	m *match.Match
}

// New wraps m. The record must not be mutated while the view is in use.
func New(m *match.Match) Facts {
	return Facts{m: m}
}

// Match returns the underlying record.
func (f Facts) Match() *match.Match { return f.m }

// SetCount is the number of played sets.
func (f Facts) SetCount() int { return len(f.m.Sets) }

// Set returns set i. An out-of-range index is a programming error.
func (f Facts) Set(i int) *match.Set {
	if i < 0 || i >= len(f.m.Sets) {
		panic(fmt.Sprintf("facts: set index %d out of range [0,%d)", i, len(f.m.Sets)))
	}
	return &f.m.Sets[i]
}

// SetPoints returns the final points of set i.
func (f Facts) SetPoints(i int) (home, guest int) {
	s := f.Set(i)
	return s.HomePoints, s.GuestPoints
}

// SetTotal is the combined point total of set i.
func (f Facts) SetTotal(i int) int {
	h, g := f.SetPoints(i)
	return h + g
}

// SetWinner returns the side that won set i, or "" for a level set.
func (f Facts) SetWinner(i int) match.Side {
	return f.Set(i).Winner()
}

// SetDurationMinutes rounds the set's length up to whole minutes.
func (f Facts) SetDurationMinutes(i int) int {
	s := f.Set(i)
	return ceilMinutes(s.EndTime - s.StartTime)
}

// MatchDurationMinutes spans from the first set's start to the last set's
// end, rounded up.
func (f Facts) MatchDurationMinutes() int {
	if len(f.m.Sets) == 0 {
		return 0
	}
	return ceilMinutes(f.EndTime() - f.StartTime())
}

// StartTime is the first set's start in epoch milliseconds.
func (f Facts) StartTime() int64 {
	if len(f.m.Sets) == 0 {
		return 0
	}
	return f.m.Sets[0].StartTime
}

// EndTime is the last set's end in epoch milliseconds.
func (f Facts) EndTime() int64 {
	if len(f.m.Sets) == 0 {
		return 0
	}
	return f.m.Sets[len(f.m.Sets)-1].EndTime
}

func ceilMinutes(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int((ms + msPerMinute - 1) / msPerMinute)
}

// TotalPoints sums points across all sets.
func (f Facts) TotalPoints() (home, guest int) {
	for i := range f.m.Sets {
		home += f.m.Sets[i].HomePoints
		guest += f.m.Sets[i].GuestPoints
	}
	return home, guest
}

// RunningTotals returns, per set, the cumulative points of each side up to
// and including that set.
func (f Facts) RunningTotals(side match.Side) []int {
	out := make([]int, len(f.m.Sets))
	sum := 0
	for i := range f.m.Sets {
		sum += f.m.Sets[i].Points(side)
		out[i] = sum
	}
	return out
}

// SetsWon returns the final set tally of side.
func (f Facts) SetsWon(side match.Side) int {
	if side == match.Guest {
		return f.m.GuestSets
	}
	return f.m.HomeSets
}

// Team returns the team on side.
func (f Facts) Team(side match.Side) *match.Team {
	return f.m.Team(side)
}

// LineupConfirmed is true only if every court slot of the match kind is
// assigned in set i.
func (f Facts) LineupConfirmed(side match.Side, i int) bool {
	slots := f.m.Kind.CourtSlots()
	lineup := f.Set(i).Lineup(side)
	if slots == 0 || len(lineup) < slots {
		return false
	}
	for _, n := range lineup[:slots] {
		if n == match.NoPlayer {
			return false
		}
	}
	return true
}

// PlayerLabel renders a player number, mapping the captain, team and
// no-player sentinels to C, T and -.
func PlayerLabel(number int) string {
	switch number {
	case match.CaptainMarker:
		return "C"
	case match.TeamMarker:
		return "T"
	case match.NoPlayer:
		return "-"
	default:
		return strconv.Itoa(number)
	}
}

// IsLibero reports whether number is a libero on side's roster.
func (f Facts) IsLibero(side match.Side, number int) bool {
	for _, p := range f.Team(side).Players {
		if p.Number == number {
			return p.Libero
		}
	}
	return false
}

// IsCaptain reports whether number is side's captain.
func (f Facts) IsCaptain(side match.Side, number int) bool {
	return number != match.NoPlayer && f.Team(side).Captain == number
}

// Starters lists side's non-libero players by number.
func (f Facts) Starters(side match.Side) []match.Player {
	return f.players(side, false)
}

// Liberos lists side's liberos by number.
func (f Facts) Liberos(side match.Side) []match.Player {
	return f.players(side, true)
}

func (f Facts) players(side match.Side, libero bool) []match.Player {
	var out []match.Player
	for _, p := range f.Team(side).Players {
		if p.Libero == libero {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// RosterSize is the number of players on side's roster.
func (f Facts) RosterSize(side match.Side) int {
	return len(f.Team(side).Players)
}
