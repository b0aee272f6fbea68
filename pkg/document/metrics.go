package document

import (
	"fmt"
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// Font selects one of the two core faces used by the renderers.
type Font int

const (
	Regular Font = iota
	Bold
)

const fontFamily = "Helvetica"

func (f Font) style() string {
	if f == Bold {
		return "B"
	}
	return ""
}

// Metrics measures rendered text width using the core Helvetica advance
// widths. Text is translated to cp1252 first, the same way Serialize does,
// so measured and drawn strings agree byte for byte.
// A Metrics value is read-only after construction and safe for concurrent use.
type Metrics struct {
	widths    [2][256]float64
	translate func(string) string
}

var (
	sharedMetrics    *Metrics
	sharedMetricsErr error
	metricsOnce      sync.Once
)

// DefaultMetrics returns the process-wide metrics table.
func DefaultMetrics() (*Metrics, error) {
	metricsOnce.Do(func() {
		sharedMetrics, sharedMetricsErr = NewMetrics()
	})
	return sharedMetrics, sharedMetricsErr
}

func NewMetrics() (*Metrics, error) {
	// With "pt" units and a 1000pt font, GetStringWidth returns the raw
	// glyph advance in 1/1000 em.
	pdf := gofpdf.New("P", "pt", "A4", "")
	m := &Metrics{translate: pdf.UnicodeTranslatorFromDescriptor("")}

	for _, f := range []Font{Regular, Bold} {
		pdf.SetFont(fontFamily, f.style(), 1000)
		for b := 1; b < 256; b++ {
			m.widths[f][b] = pdf.GetStringWidth(string([]byte{byte(b)}))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to load core font metrics: %w", err)
	}
	return m, nil
}

// Width returns the width in points of text drawn with font at size.
func (m *Metrics) Width(text string, font Font, size float64) float64 {
	encoded := m.translate(text)
	var units float64
	for i := 0; i < len(encoded); i++ {
		units += m.widths[font][encoded[i]]
	}
	return units * size / 1000
}

// Encode converts text to the single-byte encoding used in the output.
func (m *Metrics) Encode(text string) string {
	return m.translate(text)
}
