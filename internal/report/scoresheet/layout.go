package scoresheet

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/okian/scoresheet/internal/domain/match"
)

// courtLayout is the per-kind rendering strategy. The interface is sealed;
// layoutFor is the only constructor.
type courtLayout interface {
	// hasRoster reports whether roster, lineup and substitution sections
	// are rendered.
	hasRoster() bool
	// rows arranges a starting lineup into the court diagram.
	rows(l match.Lineup) [][]slotView
	// breaksOnOdd reports whether odd-indexed sets start a new page for a
	// match with setCount sets.
	breaksOnOdd(setCount int) bool
	sealed()
}

func layoutFor(k match.Kind) (courtLayout, error) {
	switch k {
	case match.KindIndoor:
		return indoorLayout{}, nil
	case match.KindIndoor4x4:
		return indoor4x4Layout{}, nil
	case match.KindBeach:
		return beachLayout{}, nil
	case match.KindSnow:
		return snowLayout{}, nil
	}
	return nil, crerr.Wrapf(ErrUnknownKind, "%q", k)
}

var romans = [...]string{"I", "II", "III", "IV", "V", "VI"}

// front row IV III II over back row V VI I, by zero-based slot.
var rotation = [][]int{{3, 2, 1}, {4, 5, 0}}

func slot(l match.Lineup, i int, used int) slotView {
	v := slotView{Position: romans[i]}
	if i >= used {
		return v
	}
	if i < len(l) {
		v.Player = playerLabel(l[i])
	} else {
		v.Player = playerLabel(match.NoPlayer)
	}
	return v
}

func rotationRows(l match.Lineup, used int) [][]slotView {
	out := make([][]slotView, len(rotation))
	for r, row := range rotation {
		out[r] = make([]slotView, len(row))
		for c, i := range row {
			out[r][c] = slot(l, i, used)
		}
	}
	return out
}

type indoorLayout struct{}

func (indoorLayout) hasRoster() bool                  { return true }
func (indoorLayout) rows(l match.Lineup) [][]slotView { return rotationRows(l, 6) }
func (indoorLayout) breaksOnOdd(int) bool             { return true }
func (indoorLayout) sealed()                          {}

// indoor4x4Layout reuses the six-slot court and leaves V and VI blank.
type indoor4x4Layout struct{}

func (indoor4x4Layout) hasRoster() bool                  { return true }
func (indoor4x4Layout) rows(l match.Lineup) [][]slotView { return rotationRows(l, 4) }
func (indoor4x4Layout) breaksOnOdd(int) bool             { return true }
func (indoor4x4Layout) sealed()                          {}

type beachLayout struct{}

func (beachLayout) hasRoster() bool                { return false }
func (beachLayout) rows(match.Lineup) [][]slotView { return nil }
func (beachLayout) breaksOnOdd(n int) bool         { return n > 2 }
func (beachLayout) sealed()                        {}

type snowLayout struct{}

func (snowLayout) hasRoster() bool { return true }
func (snowLayout) rows(l match.Lineup) [][]slotView {
	return [][]slotView{{slot(l, 2, 3), slot(l, 1, 3), slot(l, 0, 3)}}
}
func (snowLayout) breaksOnOdd(n int) bool { return n > 2 }
func (snowLayout) sealed()                {}
