// Package archive bundles rendered documents into a single zip download.
package archive

import (
	"archive/zip"
	"bytes"
	"path"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/filename"
)

// ErrWrite is returned when the zip cannot be assembled.
var ErrWrite = crerr.New("archive write failed")

// entryTime is stamped on every entry; zip cannot encode earlier dates.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Build zips docs in the given order. Clashing names get a numeric suffix
// before the extension: a.html, a_2.html, a_3.html.
func Build(name string, docs []report.Document) (report.Document, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int, len(docs))
	for _, d := range docs {
		entry := unique(seen, d.Filename)
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Deflate, Modified: entryTime})
		if err != nil {
			return report.Document{}, crerr.Mark(crerr.Wrapf(err, "entry %s", entry), ErrWrite)
		}
		if _, err := w.Write(d.Body); err != nil {
			return report.Document{}, crerr.Mark(crerr.Wrapf(err, "entry %s", entry), ErrWrite)
		}
	}
	if err := zw.Close(); err != nil {
		return report.Document{}, crerr.Mark(err, ErrWrite)
	}
	return report.Document{
		Filename:    filename.Archive(name),
		ContentType: report.ContentTypeZip,
		Body:        buf.Bytes(),
	}, nil
}

func unique(seen map[string]int, name string) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	ext := path.Ext(name)
	candidate := strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(n) + ext
	if _, taken := seen[candidate]; taken {
		return unique(seen, name)
	}
	seen[candidate] = 1
	return candidate
}
