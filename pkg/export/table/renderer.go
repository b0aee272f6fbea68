package table

import (
	"strings"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/document"
	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
)

// Layout constants of the report page, in points.
const (
	margin        = 36.0
	logoMaxHeight = 60.0
	titleOffsetX  = 200.0
	headerHeight  = 18.0
	headerGap     = 8.0
	rowHeight     = 14.0
	cellPadding   = 6.0
	safetyMargin  = 50.0
	topOnNewPage  = 20.0
	closingOffset = 18.0
	labelSize     = 9.0
	bodySize      = 10.0
	titleSize     = 16.0
)

var (
	accent  = document.RGB(0.06, 0.45, 0.75)
	dark    = document.Gray(0.08)
	zebra   = document.RGB(0.94, 0.97, 0.99)
	closing = document.Gray(0.8)
)

const generatedBy = "Generado por el sistema de gestión de farmacia"

// Renderer lays out report rows as a paginated table.
type Renderer struct {
	metrics   *document.Metrics
	formatter format.Formatter
	now       func() time.Time
}

type Option func(*Renderer)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithFormatter(f format.Formatter) Option {
	return func(r *Renderer) { r.formatter = f }
}

func NewRenderer(metrics *document.Metrics, opts ...Option) *Renderer {
	r := &Renderer{metrics: metrics, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the document for rows laid out by columns. A nil logo is
// simply skipped. Rows beyond the safety margin continue on a new page that
// starts with the header band again.
func (r *Renderer) Render(title string, columns []domain.ColumnSpec, rows []domain.ReportRow, logo *document.Logo) *document.Document {
	now := r.now()
	doc := document.New(title, now)
	cur := document.NewCursor(doc, margin)

	if logo != nil {
		w, h := logo.Fit(logoMaxHeight)
		cur.Page.DrawImage(margin, margin, w, h, logo)
	}
	cur.Page.DrawText(margin+titleOffsetX, margin+12, title, document.Bold, titleSize, accent)
	cur.Page.DrawText(margin, margin+80, "Fecha: "+r.formatter.ShortDate(now), document.Regular, bodySize, dark)
	cur.Page.DrawText(margin, margin+92, generatedBy, document.Regular, bodySize, dark)
	cur.Advance(100)

	widths := ColumnWidths(columns, doc.Width-2*margin)
	r.header(cur, columns, widths)

	bottom := doc.Height - (margin + safetyMargin)
	for i, row := range rows {
		if cur.Y > bottom {
			cur.Break(doc, margin+topOnNewPage)
			r.header(cur, columns, widths)
		}
		if i%2 == 1 {
			cur.Page.FillRect(margin, cur.Y, sum(widths), rowHeight, zebra)
		}

		x := margin
		for c, col := range columns {
			text := cellText(row.Get(col.Key))
			tx := x + cellPadding
			if col.Align == domain.AlignRight {
				tx = x + widths[c] - cellPadding - r.metrics.Width(text, document.Regular, labelSize)
			}
			cur.Page.DrawText(tx, cur.Y+10, text, document.Regular, labelSize, dark)
			x += widths[c]
		}
		cur.Advance(rowHeight)
	}

	lineY := doc.Height - (margin + closingOffset)
	cur.Page.DrawLine(margin, lineY, doc.Width-margin, lineY, 0.5, closing)
	return doc
}

func (r *Renderer) header(cur *document.Cursor, columns []domain.ColumnSpec, widths []float64) {
	x := margin
	for i, col := range columns {
		cur.Page.FillRect(x, cur.Y, widths[i], headerHeight, accent)
		cur.Page.DrawText(x+cellPadding, cur.Y+headerHeight-4, col.Header, document.Bold, labelSize, document.White)
		x += widths[i]
	}
	cur.Advance(headerHeight + headerGap)
}

// ColumnWidths splits total across columns by weight, rounding each share
// down. The sum may fall short of total; the remainder stays unused.
func ColumnWidths(columns []domain.ColumnSpec, total float64) []float64 {
	var weights int
	for _, c := range columns {
		weights += weight(c)
	}

	widths := make([]float64, len(columns))
	if weights == 0 {
		return widths
	}
	for i, c := range columns {
		widths[i] = float64(int(total * float64(weight(c)) / float64(weights)))
	}
	return widths
}

func weight(c domain.ColumnSpec) int {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// cellText flattens multi-line values onto one line.
func cellText(v string) string {
	if !strings.ContainsAny(v, "\r\n") {
		return v
	}
	v = strings.ReplaceAll(v, "\r\n", "\n")
	return strings.ReplaceAll(v, "\n", " | ")
}
