package sampledata

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/okian/scoresheet/internal/domain/match"
)

// Config holds configuration for a sample run.
type Config struct {
	Seed     int64      // Seed for the generator; equal seeds give equal divisions
	Teams    int        // Number of teams playing a single round robin
	Kind     match.Kind // Discipline every match is played under
	Division string     // Division name, also the workbook name
	OutDir   string     // Directory reports are written to
	Template string     // Score sheet template version
}

// Limits on the team count.
const (
	MinTeams = 2
	MaxTeams = 32
)

// Season is the kickoff of the first generated match.
var Season = time.Date(2024, time.September, 7, 19, 0, 0, 0, time.UTC)

// Validate checks the generator inputs.
func (c *Config) Validate() error {
	switch {
	case c.Teams < MinTeams || c.Teams > MaxTeams:
		return crerr.Wrapf(ErrInvalidConfig, "teams must be in [%d,%d], got %d", MinTeams, MaxTeams, c.Teams)
	case !c.Kind.Valid():
		return crerr.Wrapf(ErrInvalidConfig, "unknown kind %q", c.Kind)
	case c.Division == "":
		return crerr.Wrap(ErrInvalidConfig, "division name is required")
	}
	return nil
}

// Stats summarizes what a run wrote.
type Stats struct {
	Matches   int
	Documents int
	Bytes     int64
	Duration  time.Duration
}

// rulesFor returns the scoring rules generated matches follow.
func rulesFor(kind match.Kind) match.Rules {
	switch kind {
	case match.KindBeach, match.KindSnow:
		return match.Rules{TeamTimeouts: true, Sanctions: true, SetsToWin: 2, PointsPerSet: 21, TieBreakPoints: 15}
	case match.KindIndoor4x4:
		return match.Rules{TeamTimeouts: true, Sanctions: true, SetsToWin: 2, PointsPerSet: 25, TieBreakPoints: 15}
	default:
		return match.Rules{TeamTimeouts: true, Sanctions: true, SetsToWin: 3, PointsPerSet: 25, TieBreakPoints: 15}
	}
}

// roster is the squad shape per kind.
type roster struct {
	players int
	liberos int
}

func rosterFor(kind match.Kind) roster {
	switch kind {
	case match.KindBeach:
		return roster{players: 2}
	case match.KindSnow:
		return roster{players: 4}
	case match.KindIndoor4x4:
		return roster{players: 8, liberos: 1}
	default:
		return roster{players: 12, liberos: 2}
	}
}
