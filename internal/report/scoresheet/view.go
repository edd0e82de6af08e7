package scoresheet

import (
	"html/template"
	"strconv"
	"time"

	"github.com/okian/scoresheet/internal/domain/contrast"
	"github.com/okian/scoresheet/internal/domain/facts"
	"github.com/okian/scoresheet/internal/domain/match"
)

var playerLabel = facts.PlayerLabel

const (
	dateLayout  = "02/01/2006"
	clockLayout = "15:04"
)

type sheetView struct {
	Title    string
	CSS      template.CSS
	Current  bool
	League   string
	Kind     string
	Date     string
	Start    string
	End      string
	Duration int
	Home     teamView
	Guest    teamView
	Roster   bool
	Sets     []setView
	Footer   footerView
}

type swatch struct {
	Background string
	Text       string
}

type teamView struct {
	Name     string
	Color    swatch
	Libero   swatch
	SetsWon  int
	Anchors  []anchorView
	Total    int
	Starters []playerView
	Liberos  []playerView
}

type anchorView struct {
	Href   string
	Points int
}

type playerView struct {
	Label   string
	Name    string
	Captain bool
	Libero  bool
}

type slotView struct {
	Position string
	Player   string
}

type setView struct {
	ID          string
	Ordinal     int
	PageBreak   bool
	HomePoints  int
	GuestPoints int
	Badge       swatch
	Winner      string
	Start       string
	End         string
	Duration    int
	Serving     string
	ServeIcon   template.URL
	Lineups     bool
	Timeouts    bool
	Sanctions   []sanctionView
	Home        sideView
	Guest       sideView
	Ladder      []tokenView
}

type sideView struct {
	Team          string
	Court         [][]slotView
	Confirmed     bool
	Substitutions []substitutionView
	Timeouts      []string
}

type substitutionView struct {
	In    string
	Out   string
	Score string
}

type sanctionView struct {
	Team   string
	Player string
	Card   string
	Icon   template.URL
	Score  string
}

type tokenView struct {
	Home  bool
	Count int
	Color swatch
}

type footerView struct {
	HomePoints  int
	GuestPoints int
	HomeSets    int
	GuestSets   int
	Sets        int
	Duration    int
}

func colorSwatch(c contrast.RGB) swatch {
	return swatch{Background: c.Hex(), Text: contrast.LegacyText(c).CSS()}
}

func scoreLabel(s match.Score) string {
	return strconv.Itoa(s.Home) + ":" + strconv.Itoa(s.Guest)
}

type builder struct {
	r      *Renderer
	f      facts.Facts
	m      *match.Match
	layout courtLayout
	home   swatch
	guest  swatch
}

func (b *builder) clock(ms int64) string {
	return time.UnixMilli(ms).In(b.r.loc).Format(clockLayout)
}

func (b *builder) build() sheetView {
	m := b.m
	homeColor := contrast.MustParseHex(m.Home.Color)
	guestColor := contrast.MustParseHex(m.Guest.Color)
	b.home = colorSwatch(homeColor)
	if guestColor == homeColor {
		b.guest = colorSwatch(b.r.neutral)
	} else {
		b.guest = colorSwatch(guestColor)
	}

	v := sheetView{
		Title:    m.Home.Name + " - " + m.Guest.Name,
		CSS:      styleSheet,
		Current:  b.r.version == VersionCurrent,
		League:   m.League.Label(),
		Kind:     string(m.Kind),
		Date:     m.ScheduledAt.In(b.r.loc).Format(dateLayout),
		Duration: b.f.MatchDurationMinutes(),
		Home:     b.team(match.Home, b.home),
		Guest:    b.team(match.Guest, b.guest),
		Roster:   b.layout.hasRoster(),
	}
	if b.f.SetCount() > 0 {
		v.Start = b.clock(b.f.StartTime())
		v.End = b.clock(b.f.EndTime())
	}
	for i := 0; i < b.f.SetCount(); i++ {
		v.Sets = append(v.Sets, b.set(i))
	}
	hp, gp := b.f.TotalPoints()
	v.Footer = footerView{
		HomePoints:  hp,
		GuestPoints: gp,
		HomeSets:    m.HomeSets,
		GuestSets:   m.GuestSets,
		Sets:        b.f.SetCount(),
		Duration:    v.Duration,
	}
	return v
}

func (b *builder) team(side match.Side, color swatch) teamView {
	t := b.f.Team(side)
	v := teamView{
		Name:    t.Name,
		Color:   color,
		Libero:  colorSwatch(contrast.MustParseHex(t.LiberoColor)),
		SetsWon: b.f.SetsWon(side),
	}
	for i := 0; i < b.f.SetCount(); i++ {
		v.Anchors = append(v.Anchors, anchorView{Href: "#" + setID(i), Points: b.f.Set(i).Points(side)})
		v.Total += b.f.Set(i).Points(side)
	}
	for _, p := range b.f.Starters(side) {
		v.Starters = append(v.Starters, b.player(side, p))
	}
	for _, p := range b.f.Liberos(side) {
		v.Liberos = append(v.Liberos, b.player(side, p))
	}
	return v
}

func (b *builder) player(side match.Side, p match.Player) playerView {
	return playerView{
		Label:   playerLabel(p.Number),
		Name:    p.Name,
		Captain: b.f.IsCaptain(side, p.Number),
		Libero:  p.Libero,
	}
}

func setID(i int) string { return "set-" + strconv.Itoa(i+1) }

func (b *builder) set(i int) setView {
	s := b.f.Set(i)
	v := setView{
		ID:          setID(i),
		Ordinal:     i + 1,
		PageBreak:   pageBreakBefore(b.layout, b.f, i),
		HomePoints:  s.HomePoints,
		GuestPoints: s.GuestPoints,
		Start:       b.clock(s.StartTime),
		End:         b.clock(s.EndTime),
		Duration:    b.f.SetDurationMinutes(i),
		ServeIcon:   icon("serve"),
		Lineups:     b.layout.hasRoster(),
		Timeouts:    b.m.Rules.TeamTimeouts,
		Home:        b.side(match.Home, i),
		Guest:       b.side(match.Guest, i),
		Ladder:      b.ladder(s),
	}
	switch s.Winner() {
	case match.Home:
		v.Badge, v.Winner = b.home, b.m.Home.Name
	case match.Guest:
		v.Badge, v.Winner = b.guest, b.m.Guest.Name
	default:
		v.Badge = colorSwatch(b.r.neutral)
	}
	if s.FirstServing == match.Guest {
		v.Serving = b.m.Guest.Name
	} else if s.FirstServing == match.Home {
		v.Serving = b.m.Home.Name
	}
	if b.m.Rules.Sanctions {
		v.Sanctions = append(b.sanctions(match.Home, s), b.sanctions(match.Guest, s)...)
	}
	return v
}

func (b *builder) side(side match.Side, i int) sideView {
	s := b.f.Set(i)
	v := sideView{
		Team:      b.f.Team(side).Name,
		Court:     b.layout.rows(s.Lineup(side)),
		Confirmed: b.f.LineupConfirmed(side, i),
	}
	for _, sub := range s.Substitutions(side) {
		v.Substitutions = append(v.Substitutions, substitutionView{
			In:    playerLabel(sub.PlayerIn),
			Out:   playerLabel(sub.PlayerOut),
			Score: scoreLabel(sub.Score),
		})
	}
	for _, t := range s.Timeouts(side) {
		v.Timeouts = append(v.Timeouts, scoreLabel(t.Score))
	}
	return v
}

func (b *builder) sanctions(side match.Side, s *match.Set) []sanctionView {
	var out []sanctionView
	for _, sn := range s.Sanctions(side) {
		out = append(out, sanctionView{
			Team:   b.f.Team(side).Name,
			Player: playerLabel(sn.Player),
			Card:   string(sn.Card),
			Icon:   icon(string(sn.Card)),
			Score:  scoreLabel(sn.Score),
		})
	}
	return out
}

// ladder replays the points in recorded order with a running counter per
// side.
func (b *builder) ladder(s *match.Set) []tokenView {
	out := make([]tokenView, 0, len(s.Ladder))
	home, guest := 0, 0
	for _, tag := range s.Ladder {
		if tag == match.Home {
			home++
			out = append(out, tokenView{Home: true, Count: home, Color: b.home})
			continue
		}
		guest++
		out = append(out, tokenView{Count: guest, Color: b.guest})
	}
	return out
}
