// Package extract reads floor-plan documents and produces positioned text labels.
package extract

import (
	"fmt"

	"github.com/kortnav/rumfinder/internal/models"
)

// Result holds one document's extracted labels and the page geometry every
// label was measured against.
type Result struct {
	Labels     []models.Label
	PageWidth  float64
	PageHeight float64
}

// ReadError reports a missing, unreadable, or empty source document.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Source extracts labels from a floor-plan document. The building loader
// depends on this rather than the PDF extractor directly so tests can
// substitute in-memory label sets.
type Source interface {
	Extract(path string, page int) (*Result, error)
}
