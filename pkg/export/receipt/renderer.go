package receipt

import (
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/document"
	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
)

const (
	margin        = 42.0
	headerHeight  = 90.0
	logoMaxHeight = headerHeight - 20
	infoHeight    = 55.0
	tableHead     = 22.0
	rowPad        = 8.0
	rowGap        = 6.0
	minRowHeight  = 18.0
	lineHeight    = 12.0
	breakReserve  = 120.0
	topOnNewPage  = 20.0
	footerBase    = 30.0
	bodySize      = 10.0
	smallSize     = 9.0
	title         = "COMPROBANTE DE VENTA"
)

var (
	accent      = document.RGB(0.05, 0.47, 0.66)
	accentLight = document.RGB(0.92, 0.96, 0.98)
	dark        = document.Gray(0.07)
	muted       = document.Gray(0.35)
	separator   = document.Gray(0.85)
	tableRule   = document.Gray(0.7)
)

// Proportions of the table width given to detail, unit price and quantity.
// Subtotal takes what is left.
const (
	detailShare   = 0.58
	priceShare    = 0.15
	quantityShare = 0.12
)

var columnLabels = [4]string{"DETALLE", "PRECIO U.", "CANT.", "SUBTOTAL"}

// Renderer lays out a single-sale invoice.
type Renderer struct {
	metrics   *document.Metrics
	formatter format.Formatter
	branding  domain.Branding
	now       func() time.Time
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithFormatter(f format.Formatter) Option {
	return func(r *Renderer) { r.formatter = f }
}

func WithBranding(b domain.Branding) Option {
	return func(r *Renderer) { r.branding = b }
}

func NewRenderer(metrics *document.Metrics, opts ...Option) *Renderer {
	r := &Renderer{
		metrics:  metrics,
		branding: domain.DefaultBranding(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type columns struct {
	x      float64
	width  float64
	detail float64
	price  float64
	qty    float64
}

// edges returns the x positions of the three inner column boundaries.
func (c columns) edges() [3]float64 {
	return [3]float64{
		c.x + c.detail,
		c.x + c.detail + c.price,
		c.x + c.detail + c.price + c.qty,
	}
}

// Render builds the receipt document. A nil logo is skipped.
func (r *Renderer) Render(rc domain.Receipt, logo *document.Logo) *document.Document {
	doc := document.New(title+" "+rc.Number(), r.now())
	cur := document.NewCursor(doc, margin)
	right := doc.Width - margin

	// header band
	if logo != nil {
		w, h := logo.Fit(logoMaxHeight)
		cur.Page.DrawImage(margin, margin-6, w, h, logo)
	}
	r.rightText(cur.Page, right, cur.Y+6, title, document.Bold, 18, accent)
	r.rightText(cur.Page, right, cur.Y+28, r.branding.Name, document.Regular, smallSize, muted)
	r.rightText(cur.Page, right, cur.Y+39, r.branding.Phone, document.Regular, smallSize, muted)
	cur.Advance(headerHeight)

	cur.Page.DrawLine(margin, cur.Y, right, cur.Y, 0.8, accentLight)
	cur.Advance(16)

	// info band
	cur.Page.DrawText(margin, cur.Y+18, "N° "+rc.Number(), document.Bold, 12, dark)
	cur.Page.DrawText(margin, cur.Y+34, r.formatter.DateTime(rc.IssuedAt), document.Regular, smallSize, muted)
	r.rightText(cur.Page, right, cur.Y+18, "Total: "+r.formatter.Currency(rc.Total), document.Bold, 12, dark)
	client := rc.ClientName
	if client == "" {
		client = domain.UnregisteredClient
	}
	cur.Page.DrawText(margin, cur.Y+50, "Cliente:", document.Bold, bodySize, muted)
	cur.Page.DrawText(margin+62, cur.Y+50, client, document.Regular, bodySize, dark)
	cur.Advance(infoHeight + 8)

	tableWidth := doc.Width - 2*margin
	cols := columns{
		x:      margin,
		width:  tableWidth,
		detail: float64(int(tableWidth * detailShare)),
		price:  float64(int(tableWidth * priceShare)),
		qty:    float64(int(tableWidth * quantityShare)),
	}
	r.tableHeader(cur, cols)

	limit := doc.Height - (margin + breakReserve)
	for i, line := range rc.Lines {
		lines := r.metrics.Wrap(line.Detail, document.Regular, bodySize, cols.detail-2*rowPad)
		rowH := max(minRowHeight, float64(len(lines))*lineHeight+8)

		if cur.Y > limit || cur.Y+rowH > doc.Height-margin {
			cur.Break(doc, margin+topOnNewPage)
			r.tableHeader(cur, cols)
		}
		r.row(cur, cols, i, lines, rowH, line)
		cur.Advance(rowH + rowGap)
	}

	cur.Page.DrawLine(cols.x, cur.Y-6, cols.x+cols.width, cur.Y-6, 0.8, tableRule)
	cur.Advance(rowGap)

	// The total block must stay clear of the footer block.
	footerTop := doc.Height - (margin + footerBase + 30)
	if cur.Y+40 > footerTop {
		cur.Break(doc, margin+topOnNewPage)
	}
	totalValue := r.formatter.Currency(rc.Total)
	totalW := r.metrics.Width(totalValue, document.Bold, 16)
	cur.Page.DrawText(cols.x+cols.width-totalW-8-60, cur.Y+2, "TOTAL", document.Bold, 12, muted)
	cur.Page.DrawText(cols.x+cols.width-totalW-8, cur.Y+6, totalValue, document.Bold, 16, dark)
	cur.Advance(40)

	r.footer(cur.Page, doc)
	return doc
}

func (r *Renderer) tableHeader(cur *document.Cursor, cols columns) {
	cur.Page.FillRect(cols.x, cur.Y-6, cols.width, tableHead, accent)
	e := cols.edges()
	starts := [4]float64{cols.x, e[0], e[1], e[2]}
	for i, label := range columnLabels {
		cur.Page.DrawText(starts[i]+rowPad, cur.Y+10, label, document.Bold, bodySize, document.White)
	}
	cur.Advance(tableHead + rowGap)
}

func (r *Renderer) row(cur *document.Cursor, cols columns, index int, lines []string, rowH float64, line domain.ReceiptLine) {
	bg := document.White
	if index%2 == 1 {
		bg = accentLight
	}
	top := cur.Y - 6
	cur.Page.FillRect(cols.x, top, cols.width, rowH, bg)

	ly := cur.Y + 10
	for _, l := range lines {
		cur.Page.DrawText(cols.x+rowPad, ly, l, document.Regular, bodySize, dark)
		ly += lineHeight
	}

	edges := cols.edges()
	numbers := [3]string{
		r.formatter.Money(line.UnitPrice),
		r.formatter.Int(line.Quantity),
		r.formatter.Money(line.Subtotal),
	}
	ends := [3]float64{edges[1], edges[2], cols.x + cols.width}
	for i, n := range numbers {
		w := r.metrics.Width(n, document.Regular, bodySize)
		cur.Page.DrawText(ends[i]-w-rowPad, cur.Y+8, n, document.Regular, bodySize, dark)
	}

	for _, x := range edges {
		cur.Page.DrawLine(x, top, x, top+rowH, 0.6, separator)
	}
}

func (r *Renderer) footer(p *document.Page, doc *document.Document) {
	base := doc.Height - (margin + footerBase)
	right := doc.Width - margin

	p.DrawLine(margin, base-30, right, base-30, 0.5, accentLight)
	p.DrawText(margin, base-10, r.branding.Name, document.Bold, bodySize, accent)
	p.DrawText(margin, base+2, r.branding.Address, document.Regular, smallSize, muted)
	p.DrawText(margin, base+14, r.branding.Contact, document.Regular, smallSize, muted)
	r.rightText(p, right, base+2, r.branding.Thanks, document.Regular, bodySize, muted)
}

func (r *Renderer) rightText(p *document.Page, right, y float64, text string, font document.Font, size float64, color document.Color) {
	p.DrawText(right-r.metrics.Width(text, font, size), y, text, font, size, color)
}
