// Package report holds what every renderer hands back to its caller.
package report

// Content types of rendered documents.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZip  = "application/zip"
)

// Document is a rendered, unstored report.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Size is the length of the body in bytes.
func (d Document) Size() int { return len(d.Body) }
