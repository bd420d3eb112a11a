package extract

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kortnav/rumfinder/internal/models"
)

// Fallback page size (US Letter, points) when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Glyph runs break when the horizontal gap exceeds this fraction of the font
// size (floor of minRunGap points), or when the baseline shifts.
const (
	runGapFactor      = 0.75
	minRunGap         = 1.0
	baselineTolerance = 0.5
)

// PDFExtractor extracts positioned labels from PDF floor plans.
type PDFExtractor struct{}

// NewPDFExtractor returns a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads the document at path and returns the labels of the given
// page (1-based). Labels are reported with a top-left origin in page units
// so that normalized y grows downwards, matching rendered images.
// Fails with ReadError if the document is missing, unreadable, or has no pages.
func (e *PDFExtractor) Extract(path string, page int) (result *Result, err error) {
	// The pdf library panics on some malformed cross-reference tables;
	// surface those as read errors instead of crashing the load.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ReadError{Path: path, Err: fmt.Errorf("malformed document: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return nil, &ReadError{Path: path, Err: errors.New("document has no pages")}
	}
	if page < 1 || page > r.NumPage() {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("page %d out of range (document has %d)", page, r.NumPage())}
	}
	p := r.Page(page)
	if p.V.IsNull() {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("page %d is empty", page)}
	}

	width, height := pageSize(p)
	labels := assembleLabels(p.Content().Text, width, height)
	return &Result{Labels: labels, PageWidth: width, PageHeight: height}, nil
}

// pageSize returns the page dimensions from its MediaBox, falling back to
// US Letter when the box is absent or malformed.
func pageSize(p pdf.Page) (width, height float64) {
	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Kind() != pdf.Array || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}
	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v := box.Index(i)
		switch v.Kind() {
		case pdf.Integer:
			coords[i] = float64(v.Int64())
		case pdf.Real:
			coords[i] = v.Float64()
		default:
			return defaultPageWidth, defaultPageHeight
		}
	}
	width = coords[2] - coords[0]
	height = coords[3] - coords[1]
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}

// assembleLabels groups the page's glyphs into labels. The content stream
// places text one glyph at a time, so consecutive glyphs sharing a baseline
// and font size merge into a single label until the horizontal gap breaks.
func assembleLabels(texts []pdf.Text, pageWidth, pageHeight float64) []models.Label {
	var labels []models.Label
	var run []pdf.Text

	flush := func() {
		if len(run) == 0 {
			return
		}
		var sb strings.Builder
		minX := run[0].X
		for _, t := range run {
			sb.WriteString(t.S)
			if t.X < minX {
				minX = t.X
			}
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			labels = append(labels, models.Label{
				Text: text,
				X:    minX,
				// PDF y grows upwards; flip to the top-left frame.
				Y:          pageHeight - run[0].Y,
				FontSize:   run[0].FontSize,
				PageWidth:  pageWidth,
				PageHeight: pageHeight,
			})
		}
		run = run[:0]
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		if len(run) > 0 && !sameRun(run[len(run)-1], t) {
			flush()
		}
		run = append(run, t)
	}
	flush()
	return labels
}

// sameRun reports whether cur continues prev's glyph run.
func sameRun(prev, cur pdf.Text) bool {
	if math.Abs(cur.Y-prev.Y) > baselineTolerance {
		return false
	}
	if cur.FontSize != prev.FontSize {
		return false
	}
	slack := prev.FontSize * runGapFactor
	if slack < minRunGap {
		slack = minRunGap
	}
	gap := cur.X - (prev.X + prev.W)
	return gap >= -slack && gap <= slack
}
