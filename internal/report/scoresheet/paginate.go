package scoresheet

import (
	"github.com/okian/scoresheet/internal/domain/facts"
	"github.com/okian/scoresheet/internal/domain/match"
)

// Density limits past which a set section starts on a new page.
const (
	maxRosterOnFirstPage = 14
	maxSubstitutions     = 6
	maxSetPoints         = 64
)

// pageBreakBefore reports whether set i starts on a new page.
func pageBreakBefore(l courtLayout, f facts.Facts, i int) bool {
	s := f.Set(i)
	switch {
	case i%2 == 1 && l.breaksOnOdd(f.SetCount()):
		return true
	case i == 0 && (f.RosterSize(match.Home) > maxRosterOnFirstPage || f.RosterSize(match.Guest) > maxRosterOnFirstPage):
		return true
	case len(s.HomeSubstitutions) > maxSubstitutions || len(s.GuestSubstitutions) > maxSubstitutions:
		return true
	default:
		return f.SetTotal(i) > maxSetPoints
	}
}
