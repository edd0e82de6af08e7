// Package match contains the hydrated match record consumed by the report
// engine. Records are owned by the administration domain; this package only
// describes and checks them.
package match

import "time"

// Kind identifies the volleyball discipline a match was played under.
type Kind string

// Supported kinds. The set is closed: renderers switch over Kinds().
const (
	KindIndoor    Kind = "INDOOR"
	KindIndoor4x4 Kind = "INDOOR_4X4"
	KindBeach     Kind = "BEACH"
	KindSnow      Kind = "SNOW"
)

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindIndoor, KindIndoor4x4, KindBeach, KindSnow}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// CourtSlots is the number of starting positions a lineup has for the kind.
func (k Kind) CourtSlots() int {
	switch k {
	case KindIndoor:
		return 6
	case KindIndoor4x4:
		return 4
	case KindSnow:
		return 3
	case KindBeach:
		return 2
	default:
		return 0
	}
}

// Side tags which team an event belongs to.
type Side string

// Ladder tags.
const (
	Home  Side = "H"
	Guest Side = "G"
)

// Player number sentinels used by sanctions and rosters.
const (
	NoPlayer      = -1
	CaptainMarker = 100
	TeamMarker    = 200
)

// Match is a fully hydrated match record.
type Match struct {
	ID          string    `json:"id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Kind        Kind      `json:"kind" validate:"required"`
	League      League    `json:"league"`
	Home        Team      `json:"home_team" validate:"required"`
	Guest       Team      `json:"guest_team" validate:"required"`
	Rules       Rules     `json:"rules"`
	Sets        []Set     `json:"sets" validate:"dive"`
	HomeSets    int       `json:"home_sets" validate:"gte=0"`
	GuestSets   int       `json:"guest_sets" validate:"gte=0"`
}

// League labels the competition a match belongs to.
type League struct {
	Name     string `json:"name"`
	Division string `json:"division"`
}

// Label joins league and division names for headers.
func (l League) Label() string {
	switch {
	case l.Name == "":
		return l.Division
	case l.Division == "":
		return l.Name
	default:
		return l.Name + " / " + l.Division
	}
}

// Team is one side of a match with its roster.
type Team struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Color       string   `json:"color"`
	LiberoColor string   `json:"libero_color"`
	Captain     int      `json:"captain"`
	Players     []Player `json:"players" validate:"dive"`
}

// Player is a roster entry.
type Player struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Libero bool   `json:"libero"`
}

// Rules is the snapshot of the rule set the match was scored under.
type Rules struct {
	TeamTimeouts   bool `json:"team_timeouts"`
	Sanctions      bool `json:"sanctions"`
	SetsToWin      int  `json:"sets_to_win"`
	PointsPerSet   int  `json:"points_per_set"`
	TieBreakPoints int  `json:"tie_break_points"`
}

// Score is the running score when an event happened.
type Score struct {
	Home  int `json:"home"`
	Guest int `json:"guest"`
}

// Lineup holds the starting players per court slot. A slot value of
// NoPlayer marks an unassigned position.
type Lineup []int

// Substitution swaps a player on court.
type Substitution struct {
	PlayerIn  int   `json:"player_in"`
	PlayerOut int   `json:"player_out"`
	Score     Score `json:"score"`
}

// Timeout is a team timeout call.
type Timeout struct {
	Score Score `json:"score"`
}

// Card is the severity of a sanction.
type Card string

// Sanction severities.
const (
	CardDelayWarning     Card = "delay_warning"
	CardDelayPenalty     Card = "delay_penalty"
	CardWarning          Card = "warning"
	CardPenalty          Card = "penalty"
	CardExpulsion        Card = "expulsion"
	CardDisqualification Card = "disqualification"
)

// Sanction is a card given to a player, the captain or the team.
type Sanction struct {
	Player int   `json:"player"`
	Card   Card  `json:"card"`
	Score  Score `json:"score"`
}

// Set is one played set.
type Set struct {
	StartTime          int64          `json:"start_time"`
	EndTime            int64          `json:"end_time"`
	HomePoints         int            `json:"home_points" validate:"gte=0"`
	GuestPoints        int            `json:"guest_points" validate:"gte=0"`
	Ladder             []Side         `json:"ladder"`
	FirstServing       Side           `json:"first_serving"`
	HomeLineup         Lineup         `json:"home_lineup"`
	GuestLineup        Lineup         `json:"guest_lineup"`
	HomeSubstitutions  []Substitution `json:"home_substitutions"`
	GuestSubstitutions []Substitution `json:"guest_substitutions"`
	HomeTimeouts       []Timeout      `json:"home_timeouts"`
	GuestTimeouts      []Timeout      `json:"guest_timeouts"`
	HomeSanctions      []Sanction     `json:"home_sanctions"`
	GuestSanctions     []Sanction     `json:"guest_sanctions"`
}

// Team returns the team playing on side s.
func (m *Match) Team(s Side) *Team {
	if s == Guest {
		return &m.Guest
	}
	return &m.Home
}

// Lineup returns the starting lineup of side s.
func (s *Set) Lineup(side Side) Lineup {
	if side == Guest {
		return s.GuestLineup
	}
	return s.HomeLineup
}

// Substitutions returns the substitutions of side s.
func (s *Set) Substitutions(side Side) []Substitution {
	if side == Guest {
		return s.GuestSubstitutions
	}
	return s.HomeSubstitutions
}

// Timeouts returns the timeouts called by side s.
func (s *Set) Timeouts(side Side) []Timeout {
	if side == Guest {
		return s.GuestTimeouts
	}
	return s.HomeTimeouts
}

// Sanctions returns the sanctions given to side s.
func (s *Set) Sanctions(side Side) []Sanction {
	if side == Guest {
		return s.GuestSanctions
	}
	return s.HomeSanctions
}

// Points returns the final points of side s.
func (s *Set) Points(side Side) int {
	if side == Guest {
		return s.GuestPoints
	}
	return s.HomePoints
}

// Winner returns the side with more points, or "" when the set is level.
func (s *Set) Winner() Side {
	switch {
	case s.HomePoints > s.GuestPoints:
		return Home
	case s.GuestPoints > s.HomePoints:
		return Guest
	default:
		return ""
	}
}
