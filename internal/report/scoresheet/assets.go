package scoresheet

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets/style.css assets/sheet.html.tmpl assets/icons/*.svg
var assetFS embed.FS

var (
	styleSheet = template.CSS(mustRead("assets/style.css"))
	icons      = loadIcons()
	sheet      = template.Must(template.New("sheet.html.tmpl").Funcs(funcs).ParseFS(assetFS, "assets/sheet.html.tmpl"))
)

type teamBlock struct {
	Team    teamView
	Current bool
}

type sideBlockView struct {
	Side     sideView
	Timeouts bool
}

var funcs = template.FuncMap{
	"teamHeader": func(t teamView, current bool) teamBlock {
		return teamBlock{Team: t, Current: current}
	},
	"sideBlock": func(s sideView, timeouts bool) sideBlockView {
		return sideBlockView{Side: s, Timeouts: timeouts}
	},
}

func mustRead(name string) []byte {
	b, err := assetFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return b
}

// loadIcons inlines every icon as a base64 data URI keyed by file stem.
func loadIcons() map[string]template.URL {
	out := make(map[string]template.URL)
	entries, err := fs.ReadDir(assetFS, "assets/icons")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		raw := mustRead(path.Join("assets/icons", e.Name()))
		stem := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		out[stem] = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(raw))
	}
	return out
}

// icon returns the data URI of a named icon, or "" when there is none.
func icon(name string) template.URL {
	return icons[name]
}
