// Package filename builds download names for rendered reports.
package filename

import (
	"strings"
	"time"
	"unicode"
)

// Extensions of the rendered documents.
const (
	HTMLExt = ".html"
	XLSXExt = ".xlsx"
	ZipExt  = ".zip"
)

const (
	separator  = "__"
	dateLayout = "02_01_2006"
)

// Sanitize replaces whitespace and the characters ?*<:>+[]/' with an
// underscore. Every other rune is kept as is.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		switch r {
		case '?', '*', '<', ':', '>', '+', '[', ']', '/', '\'':
			return '_'
		}
		return r
	}, s)
}

// Stem is <home>__<guest>__<dd_MM_yyyy> with both names sanitized. The
// date is formatted in its own location.
func Stem(home, guest string, date time.Time) string {
	return Sanitize(home) + separator + Sanitize(guest) + separator + date.Format(dateLayout)
}

// ScoreSheet names the HTML score sheet of one match.
func ScoreSheet(home, guest string, date time.Time) string {
	return Stem(home, guest, date) + HTMLExt
}

// Workbook names a division workbook. The division name is used verbatim.
func Workbook(division string) string {
	return division + XLSXExt
}

// Archive names the zip of a division's score sheets.
func Archive(division string) string {
	return Sanitize(division) + ZipExt
}
