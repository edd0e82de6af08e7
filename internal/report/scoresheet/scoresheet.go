// Package scoresheet renders a single match into a printable HTML score
// sheet.
package scoresheet

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/okian/scoresheet/internal/domain/contrast"
	"github.com/okian/scoresheet/internal/domain/facts"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/filename"
)

// Version selects the template variant.
type Version string

// Template versions. Current adds header totals and a footer.
const (
	VersionLegacy  Version = "legacy"
	VersionCurrent Version = "current"
)

// ParseVersion maps a configuration string to a Version.
func ParseVersion(s string) (Version, error) {
	switch v := Version(s); v {
	case VersionLegacy, VersionCurrent:
		return v, nil
	}
	return "", crerr.Wrapf(ErrUnknownVersion, "%q", s)
}

// DefaultNeutralGuestColor replaces the guest swatch when both teams wear
// the same color.
const DefaultNeutralGuestColor = "#BDBDBD"

// Renderer turns match records into score sheets. It holds no mutable state
// and is safe for concurrent use.
type Renderer struct {
	version Version
	loc     *time.Location
	neutral contrast.RGB
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVersion selects the template variant.
func WithVersion(v Version) Option {
	return func(r *Renderer) { r.version = v }
}

// WithLocation sets the zone dates and clock times are printed in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithNeutralGuestColor overrides the guest swatch used on color clashes.
func WithNeutralGuestColor(c contrast.RGB) Option {
	return func(r *Renderer) { r.neutral = c }
}

// NewRenderer returns a renderer for the current template in UTC.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		version: VersionCurrent,
		loc:     time.UTC,
		neutral: contrast.MustParseHex(DefaultNeutralGuestColor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Version returns the template variant in use.
func (r *Renderer) Version() Version { return r.version }

// Render produces the score sheet of m. Records failing integrity checks
// are rejected with match.ErrDataIntegrity.
func (r *Renderer) Render(m match.Match) (report.Document, error) {
	if _, err := ParseVersion(string(r.version)); err != nil {
		return report.Document{}, err
	}
	if err := m.Validate(); err != nil {
		return report.Document{}, err
	}
	layout, err := layoutFor(m.Kind)
	if err != nil {
		return report.Document{}, err
	}

	b := &builder{r: r, f: facts.New(&m), m: &m, layout: layout}
	view := b.build()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sheet.Execute(buf, view); err != nil {
		return report.Document{}, crerr.Mark(crerr.Wrapf(err, "match %s", m.ID), ErrTemplateExecute)
	}

	return report.Document{
		Filename:    filename.ScoreSheet(m.Home.Name, m.Guest.Name, m.ScheduledAt.In(r.loc)),
		ContentType: report.ContentTypeHTML,
		Body:        append([]byte(nil), buf.B...),
	}, nil
}
