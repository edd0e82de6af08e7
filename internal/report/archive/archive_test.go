package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/archive"
)

func entries(t *testing.T, doc report.Document) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		r, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		_ = r.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestBuild(t *testing.T) {
	docs := []report.Document{
		{Filename: "A__B__02_01_2024.html", Body: []byte("first")},
		{Filename: "A__C__02_01_2024.html", Body: []byte("second")},
		{Filename: "A__B__02_01_2024.html", Body: []byte("rematch")},
	}

	doc, err := archive.Build("Division A", docs)
	require.NoError(t, err)
	assert.Equal(t, "Division_A.zip", doc.Filename)
	assert.Equal(t, report.ContentTypeZip, doc.ContentType)

	got := entries(t, doc)
	assert.Equal(t, map[string]string{
		"A__B__02_01_2024.html":   "first",
		"A__C__02_01_2024.html":   "second",
		"A__B__02_01_2024_2.html": "rematch",
	}, got)

	again, err := archive.Build("Division A", docs)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, again.Body)
}

func TestBuild_SuffixClash(t *testing.T) {
	docs := []report.Document{
		{Filename: "x_2.html"},
		{Filename: "x.html"},
		{Filename: "x.html"},
	}
	doc, err := archive.Build("d", docs)
	require.NoError(t, err)

	got := entries(t, doc)
	assert.Len(t, got, 3)
	assert.Contains(t, got, "x_2.html")
	assert.Contains(t, got, "x.html")
	assert.Contains(t, got, "x_3.html")
}

func TestBuild_Empty(t *testing.T) {
	doc, err := archive.Build("empty", nil)
	require.NoError(t, err)
	assert.Empty(t, entries(t, doc))
}
