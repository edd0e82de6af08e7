package workbook

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// zipEpoch is stamped on every entry. The zip format cannot encode dates
// before 1980.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// canonicalize rewrites an xlsx package with entries sorted by name and
// fixed timestamps, so equal workbooks produce equal bytes.
func canonicalize(raw []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "open package"), ErrCanonical)
	}
	files := append([]*zip.File(nil), zr.File...)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range files {
		if err := copyEntry(zw, f); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "entry %s", f.Name), ErrCanonical)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, crerr.Mark(err, ErrCanonical)
	}
	return out.Bytes(), nil
}

func copyEntry(zw *zip.Writer, f *zip.File) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     f.Name,
		Method:   zip.Deflate,
		Modified: zipEpoch,
	})
	if err != nil {
		return err
	}
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(w, r)
	return err
}
