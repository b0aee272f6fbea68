package document

import "time"

// A4 portrait in points.
const (
	A4Width  = 595.0
	A4Height = 842.0
)

type Color struct {
	R, G, B float64
}

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

var White = Gray(1)

// Op is a single draw operation. Coordinates use a top-left origin in points.
type Op interface {
	isOp()
}

// TextOp draws a run of text with its baseline at Y.
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Size  float64
	Color Color
}

// RectOp fills a rectangle whose top-left corner is at X, Y.
type RectOp struct {
	X, Y, W, H float64
	Fill       Color
}

type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          Color
}

// ImageOp places a raster image with its top-left corner at X, Y.
type ImageOp struct {
	X, Y, W, H float64
	Image      *Logo
}

func (TextOp) isOp()  {}
func (RectOp) isOp()  {}
func (LineOp) isOp()  {}
func (ImageOp) isOp() {}

type Page struct {
	Ops []Op
}

func (p *Page) DrawText(x, y float64, text string, font Font, size float64, color Color) {
	p.Ops = append(p.Ops, TextOp{X: x, Y: y, Text: text, Font: font, Size: size, Color: color})
}

func (p *Page) FillRect(x, y, w, h float64, fill Color) {
	p.Ops = append(p.Ops, RectOp{X: x, Y: y, W: w, H: h, Fill: fill})
}

func (p *Page) DrawLine(x1, y1, x2, y2, width float64, color Color) {
	p.Ops = append(p.Ops, LineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: color})
}

func (p *Page) DrawImage(x, y, w, h float64, img *Logo) {
	p.Ops = append(p.Ops, ImageOp{X: x, Y: y, W: w, H: h, Image: img})
}

// Texts returns the text runs of the page in draw order.
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// Document is an ordered list of pages built by a renderer.
type Document struct {
	Title   string
	Created time.Time
	Width   float64
	Height  float64
	Pages   []*Page
}

func New(title string, created time.Time) *Document {
	return &Document{
		Title:   title,
		Created: created,
		Width:   A4Width,
		Height:  A4Height,
	}
}

func (d *Document) AddPage() *Page {
	p := &Page{}
	d.Pages = append(d.Pages, p)
	return p
}

// Texts returns every text run of the document in page order.
func (d *Document) Texts() []string {
	var out []string
	for _, p := range d.Pages {
		out = append(out, p.Texts()...)
	}
	return out
}

// Cursor tracks the vertical layout position on the current page.
// Each render owns its own cursor.
type Cursor struct {
	Y    float64
	Page *Page
}

// NewCursor starts a new page and places the cursor at y.
func NewCursor(doc *Document, y float64) *Cursor {
	return &Cursor{Y: y, Page: doc.AddPage()}
}

// Advance moves the cursor down by dy.
func (c *Cursor) Advance(dy float64) {
	c.Y += dy
}

// Break continues layout on a fresh page at y.
func (c *Cursor) Break(doc *Document, y float64) {
	c.Page = doc.AddPage()
	c.Y = y
}
