package match

import (
	crerr "github.com/cockroachdb/errors"
)

// ErrDataIntegrity marks a structurally inconsistent record. It is raised
// instead of patching the data; callers treat it as an internal error.
var ErrDataIntegrity = crerr.New("match data integrity violation")

// Validate checks the structural invariants renderers rely on.
func (m *Match) Validate() error {
	if !m.Kind.Valid() {
		return crerr.Wrapf(ErrDataIntegrity, "match %s: unknown kind %q", m.ID, m.Kind)
	}

	homeWon, guestWon := 0, 0
	for i := range m.Sets {
		set := &m.Sets[i]
		if err := set.validate(); err != nil {
			return crerr.Wrapf(err, "match %s: set %d", m.ID, i+1)
		}
		switch set.Winner() {
		case Home:
			homeWon++
		case Guest:
			guestWon++
		}
	}
	if homeWon != m.HomeSets || guestWon != m.GuestSets {
		return crerr.Wrapf(ErrDataIntegrity,
			"match %s: set tally %d-%d does not match played sets %d-%d",
			m.ID, m.HomeSets, m.GuestSets, homeWon, guestWon)
	}
	return nil
}

func (s *Set) validate() error {
	if s.HomePoints < 0 || s.GuestPoints < 0 {
		return crerr.Wrapf(ErrDataIntegrity, "negative points %d-%d", s.HomePoints, s.GuestPoints)
	}
	if len(s.Ladder) != s.HomePoints+s.GuestPoints {
		return crerr.Wrapf(ErrDataIntegrity,
			"ladder has %d points, score is %d-%d", len(s.Ladder), s.HomePoints, s.GuestPoints)
	}

	home, guest := 0, 0
	for i, tag := range s.Ladder {
		switch tag {
		case Home:
			home++
		case Guest:
			guest++
		default:
			return crerr.Wrapf(ErrDataIntegrity, "ladder point %d has tag %q", i+1, tag)
		}
	}
	if home != s.HomePoints || guest != s.GuestPoints {
		return crerr.Wrapf(ErrDataIntegrity,
			"ladder counts %d-%d, score is %d-%d", home, guest, s.HomePoints, s.GuestPoints)
	}
	if s.EndTime != 0 && s.EndTime < s.StartTime {
		return crerr.Wrapf(ErrDataIntegrity, "set ends before it starts")
	}

	final := Score{Home: s.HomePoints, Guest: s.GuestPoints}
	for _, side := range []Side{Home, Guest} {
		if err := checkOrdered(eventScores(s.Substitutions(side)), final); err != nil {
			return crerr.Wrapf(err, "%s substitutions", side)
		}
		if err := checkOrdered(timeoutScores(s.Timeouts(side)), final); err != nil {
			return crerr.Wrapf(err, "%s timeouts", side)
		}
		if err := checkOrdered(sanctionScores(s.Sanctions(side)), final); err != nil {
			return crerr.Wrapf(err, "%s sanctions", side)
		}
	}
	return nil
}

// checkOrdered requires scores to be non-decreasing on both sides and to
// stay within the final score of the set.
func checkOrdered(scores []Score, final Score) error {
	prev := Score{}
	for i, sc := range scores {
		if sc.Home < prev.Home || sc.Guest < prev.Guest {
			return crerr.Wrapf(ErrDataIntegrity,
				"event %d at %d-%d recorded after %d-%d", i+1, sc.Home, sc.Guest, prev.Home, prev.Guest)
		}
		if sc.Home > final.Home || sc.Guest > final.Guest {
			return crerr.Wrapf(ErrDataIntegrity,
				"event %d at %d-%d exceeds final score %d-%d", i+1, sc.Home, sc.Guest, final.Home, final.Guest)
		}
		prev = sc
	}
	return nil
}

func eventScores(subs []Substitution) []Score {
	out := make([]Score, len(subs))
	for i, s := range subs {
		out[i] = s.Score
	}
	return out
}

func timeoutScores(tos []Timeout) []Score {
	out := make([]Score, len(tos))
	for i, t := range tos {
		out[i] = t.Score
	}
	return out
}

func sanctionScores(sanctions []Sanction) []Score {
	out := make([]Score, len(sanctions))
	for i, s := range sanctions {
		out[i] = s.Score
	}
	return out
}
