package sampledata

import (
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoresheet/internal/domain/match"
)

// Constants for schedule and rally timing.
const (
	matchInterval  = 24 * time.Hour
	setBreak       = 3 * time.Minute
	rallyMinMillis = 35_000
	rallySpread    = 20_000
	deuceOdds      = 5 // one set in deuceOdds goes past the target
	sanctionOdds   = 6 // one side-set in sanctionOdds gets a card
	maxTimeouts    = 2
	maxSubs        = 3
	shirtNumbers   = 99
)

var teamNames = []string{
	"Aurora", "Borealis", "Cascade", "Dynamo", "Eclipse", "Falcons", "Glacier", "Harbor",
	"Ignite", "Jaguars", "Kestrel", "Lynx", "Meteor", "Nomads", "Orbit", "Pioneers",
}

var teamColors = []string{
	"#1F4294", "#E53935", "#43A047", "#FDD835", "#8E24AA", "#FB8C00", "#00ACC1", "#FFFFFF",
	"#212121", "#6D4C41", "#D81B60", "#3949AB", "#7CB342", "#F4511E", "#546E7A", "#C0CA33",
}

var surnames = []string{
	"Keller", "Moreau", "Rossi", "Novak", "Silva", "Berg", "Costa", "Weber",
	"Dubois", "Lang", "Meier", "Fischer", "Bianchi", "Nowak", "Santos", "Vogel",
}

// Generator synthesizes consistent match records from a seed.
type Generator struct {
	rng   *rand.Rand
	kind  match.Kind
	rules match.Rules
	squad roster
}

// NewGenerator returns a generator for kind. Equal seeds produce equal
// output.
func NewGenerator(seed int64, kind match.Kind) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible fixtures
		kind:  kind,
		rules: rulesFor(kind),
		squad: rosterFor(kind),
	}
}

// Division generates cfg.Teams teams and a single round robin between them.
func Division(cfg *Config) ([]match.Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := NewGenerator(cfg.Seed, cfg.Kind)

	teams := make([]match.Team, cfg.Teams)
	for i := range teams {
		t, err := g.Team(i)
		if err != nil {
			return nil, err
		}
		teams[i] = t
	}

	var matches []match.Match
	at := Season
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			home, guest := teams[i], teams[j]
			if (i+j)%2 == 1 {
				home, guest = guest, home
			}
			id := "m-" + strconv.Itoa(len(matches)+1)
			m := g.Match(id, at, home, guest)
			m.League = match.League{Name: "Sample League", Division: cfg.Division}
			matches = append(matches, m)
			at = at.Add(matchInterval)
		}
	}
	return matches, nil
}

// Team returns the i-th team with a uuid id drawn from the seeded stream.
func (g *Generator) Team(i int) (match.Team, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return match.Team{}, err
	}
	name := teamNames[i%len(teamNames)]
	if i >= len(teamNames) {
		name += " " + strconv.Itoa(i/len(teamNames)+1)
	}

	numbers := g.rng.Perm(shirtNumbers)[:g.squad.players]
	sort.Ints(numbers)
	players := make([]match.Player, len(numbers))
	for k, n := range numbers {
		players[k] = match.Player{
			Number: n + 1,
			Name:   surnames[g.rng.Intn(len(surnames))],
		}
	}
	// the last shirts on the sheet are the liberos
	for k := len(players) - g.squad.liberos; k < len(players); k++ {
		players[k].Libero = true
	}

	return match.Team{
		ID:          id.String(),
		Name:        name,
		Color:       teamColors[i%len(teamColors)],
		LiberoColor: "#FFEB3B",
		Captain:     players[0].Number,
		Players:     players,
	}, nil
}

// Match plays a full match between home and guest starting at at.
func (g *Generator) Match(id string, at time.Time, home, guest match.Team) match.Match {
	m := match.Match{
		ID:          id,
		ScheduledAt: at,
		Kind:        g.kind,
		Home:        home,
		Guest:       guest,
		Rules:       g.rules,
	}
	start := at
	for m.HomeSets < g.rules.SetsToWin && m.GuestSets < g.rules.SetsToWin {
		target := g.rules.PointsPerSet
		if len(m.Sets) == 2*g.rules.SetsToWin-2 {
			target = g.rules.TieBreakPoints
		}
		winner := match.Home
		if g.rng.Intn(2) == 1 {
			winner = match.Guest
		}
		set := g.set(&m, start, target, winner)
		m.Sets = append(m.Sets, set)
		if winner == match.Home {
			m.HomeSets++
		} else {
			m.GuestSets++
		}
		start = time.UnixMilli(set.EndTime).UTC().Add(setBreak)
	}
	return m
}

func (g *Generator) set(m *match.Match, start time.Time, target int, winner match.Side) match.Set {
	w, l := g.finalScore(target)
	home, guest := w, l
	if winner == match.Guest {
		home, guest = l, w
	}
	ladder := Ladder(g.rng, target, home, guest)
	rallies := int64(len(ladder))

	s := match.Set{
		StartTime:    start.UnixMilli(),
		EndTime:      start.UnixMilli() + rallies*int64(rallyMinMillis+g.rng.Intn(rallySpread)),
		HomePoints:   home,
		GuestPoints:  guest,
		Ladder:       ladder,
		FirstServing: match.Home,
	}
	if g.rng.Intn(2) == 1 {
		s.FirstServing = match.Guest
	}

	s.HomeLineup = g.lineup(&m.Home)
	s.GuestLineup = g.lineup(&m.Guest)
	if g.kind == match.KindIndoor || g.kind == match.KindIndoor4x4 {
		s.HomeSubstitutions = g.substitutions(&m.Home, s.HomeLineup, ladder)
		s.GuestSubstitutions = g.substitutions(&m.Guest, s.GuestLineup, ladder)
	}
	if g.rules.TeamTimeouts {
		s.HomeTimeouts = g.timeouts(ladder)
		s.GuestTimeouts = g.timeouts(ladder)
	}
	if g.rules.Sanctions {
		s.HomeSanctions = g.sanctions(&m.Home, ladder)
		s.GuestSanctions = g.sanctions(&m.Guest, ladder)
	}
	return s
}

// finalScore returns the winner's and loser's points of a set to target.
func (g *Generator) finalScore(target int) (int, int) {
	if g.rng.Intn(deuceOdds) == 0 {
		l := target - 1 + g.rng.Intn(4)
		return l + 2, l
	}
	half := target / 2
	return target, half + g.rng.Intn(target-half-1)
}

// Ladder orders home+guest rally points so that the set is decided on the
// last point and never before it.
func Ladder(rng *rand.Rand, target, home, guest int) []match.Side {
	out := make([]match.Side, 0, home+guest)
	h, gst := 0, 0
	for h < home || gst < guest {
		pickHome := gst == guest || (h < home && rng.Intn(home+guest) < home)
		if pickHome && decided(h+1, gst, target) && (h+1 != home || gst != guest) {
			pickHome = false
		}
		if !pickHome && decided(gst+1, h, target) && (gst+1 != guest || h != home) {
			pickHome = true
		}
		if pickHome {
			out = append(out, match.Home)
			h++
		} else {
			out = append(out, match.Guest)
			gst++
		}
	}
	return out
}

// decided reports whether a side on a points against b has won the set.
func decided(a, b, target int) bool {
	return a >= target && a-b >= 2
}

func (g *Generator) lineup(t *match.Team) match.Lineup {
	slots := g.kind.CourtSlots()
	field := fieldPlayers(t)
	lineup := make(match.Lineup, slots)
	for k, idx := range g.rng.Perm(len(field))[:slots] {
		lineup[k] = field[idx]
	}
	return lineup
}

func fieldPlayers(t *match.Team) []int {
	var out []int
	for _, p := range t.Players {
		if !p.Libero {
			out = append(out, p.Number)
		}
	}
	return out
}

func (g *Generator) substitutions(t *match.Team, lineup match.Lineup, ladder []match.Side) []match.Substitution {
	var bench []int
	for _, n := range fieldPlayers(t) {
		if !contains(lineup, n) {
			bench = append(bench, n)
		}
	}
	count := min(g.rng.Intn(maxSubs+1), len(bench))
	if count == 0 {
		return nil
	}
	at := g.moments(len(ladder), count)
	out := make([]match.Substitution, count)
	for k := range out {
		out[k] = match.Substitution{
			PlayerIn:  bench[k],
			PlayerOut: lineup[k%len(lineup)],
			Score:     scoreAt(ladder, at[k]),
		}
	}
	return out
}

func (g *Generator) timeouts(ladder []match.Side) []match.Timeout {
	count := g.rng.Intn(maxTimeouts + 1)
	if count == 0 {
		return nil
	}
	out := make([]match.Timeout, count)
	for k, at := range g.moments(len(ladder), count) {
		out[k] = match.Timeout{Score: scoreAt(ladder, at)}
	}
	return out
}

func (g *Generator) sanctions(t *match.Team, ladder []match.Side) []match.Sanction {
	if g.rng.Intn(sanctionOdds) != 0 {
		return nil
	}
	cards := []match.Card{match.CardWarning, match.CardPenalty, match.CardDelayWarning}
	card := cards[g.rng.Intn(len(cards))]
	player := t.Players[g.rng.Intn(len(t.Players))].Number
	if card == match.CardDelayWarning {
		player = match.TeamMarker
	}
	return []match.Sanction{{
		Player: player,
		Card:   card,
		Score:  scoreAt(ladder, g.moments(len(ladder), 1)[0]),
	}}
}

// moments picks count ladder prefixes in [1,n), ascending.
func (g *Generator) moments(n, count int) []int {
	out := make([]int, count)
	for k := range out {
		out[k] = 1 + g.rng.Intn(max(n-1, 1))
	}
	sort.Ints(out)
	return out
}

// scoreAt is the score after the first n points of ladder.
func scoreAt(ladder []match.Side, n int) match.Score {
	var sc match.Score
	for _, side := range ladder[:min(n, len(ladder))] {
		if side == match.Home {
			sc.Home++
		} else {
			sc.Guest++
		}
	}
	return sc
}

func contains(l match.Lineup, n int) bool {
	for _, v := range l {
		if v == n {
			return true
		}
	}
	return false
}
