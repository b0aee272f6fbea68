package receipt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/document"
	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	m, err := document.DefaultMetrics()
	require.NoError(t, err)
	opts = append([]Option{
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }),
		WithFormatter(format.New("Bs.", time.UTC)),
	}, opts...)
	return NewRenderer(m, opts...)
}

func sampleReceipt(lines int) domain.Receipt {
	rc := domain.Receipt{
		SaleID:     123,
		IssuedAt:   time.Date(2024, 5, 31, 18, 45, 10, 0, time.UTC),
		ClientName: "Ana Pérez",
	}
	total := decimal.Zero
	for i := 0; i < lines; i++ {
		sub := decimal.RequireFromString("12.50").Mul(decimal.NewFromInt(2))
		rc.Lines = append(rc.Lines, domain.ReceiptLine{
			Detail:    fmt.Sprintf("MED-%03d - Medicamento %d", i, i),
			UnitPrice: decimal.RequireFromString("12.50"),
			Quantity:  2,
			Subtotal:  sub,
		})
		total = total.Add(sub)
	}
	rc.Total = total
	return rc
}

func count(texts []string, s string) int {
	var n int
	for _, t := range texts {
		if t == s {
			n++
		}
	}
	return n
}

func TestRender_SinglePage(t *testing.T) {
	r := newTestRenderer(t)

	doc := r.Render(sampleReceipt(2), nil)

	require.Len(t, doc.Pages, 1)
	texts := doc.Texts()
	assert.Contains(t, texts, "COMPROBANTE DE VENTA")
	assert.Contains(t, texts, "N° V-000123")
	assert.Contains(t, texts, "31/05/2024 18:45:10")
	assert.Contains(t, texts, "Ana Pérez")
	assert.Contains(t, texts, "Total: Bs. 50.00")
	assert.Contains(t, texts, "Bs. 50.00")
	assert.Contains(t, texts, "MED-000 - Medicamento 0")
	assert.Equal(t, 2, count(texts, "12.50"))
	assert.Equal(t, 2, count(texts, "25.00"))
	assert.Contains(t, texts, "Gracias por su preferencia.")
	for _, label := range columnLabels {
		assert.Contains(t, texts, label)
	}
}

func TestRender_UnregisteredClient(t *testing.T) {
	r := newTestRenderer(t)
	rc := sampleReceipt(1)
	rc.ClientName = ""

	doc := r.Render(rc, nil)

	assert.Contains(t, doc.Texts(), domain.UnregisteredClient)
}

func TestRender_WrapsDetail(t *testing.T) {
	r := newTestRenderer(t)
	rc := sampleReceipt(0)
	rc.Lines = []domain.ReceiptLine{{
		Detail:    "AMX-500 - Amoxicilina 500 mg capsulas duras caja por veinte unidades laboratorio nacional de especialidades farmaceuticas",
		UnitPrice: decimal.RequireFromString("3"),
		Quantity:  1,
		Subtotal:  decimal.RequireFromString("3"),
	}}
	rc.Total = decimal.RequireFromString("3")

	doc := r.Render(rc, nil)

	tableWidth := doc.Width - 2*margin
	maxWidth := float64(int(tableWidth*detailShare)) - 2*rowPad
	var detailLines []string
	for _, op := range doc.Pages[0].Ops {
		if text, ok := op.(document.TextOp); ok && text.X == margin+rowPad && text.Font == document.Regular && text.Size == bodySize {
			detailLines = append(detailLines, text.Text)
		}
	}
	require.GreaterOrEqual(t, len(detailLines), 2)
	for _, l := range detailLines {
		assert.LessOrEqual(t, r.metrics.Width(l, document.Regular, bodySize), maxWidth)
	}
	assert.Equal(t, rc.Lines[0].Detail, strings.Join(detailLines, " "))
	assert.Contains(t, doc.Texts(), "3.00")
}

func TestRender_RightAlignsNumbers(t *testing.T) {
	r := newTestRenderer(t)
	doc := r.Render(sampleReceipt(1), nil)

	right := doc.Width - margin
	for _, op := range doc.Pages[0].Ops {
		if text, ok := op.(document.TextOp); ok && text.Text == "25.00" {
			assert.InDelta(t, right-rowPad, text.X+r.metrics.Width("25.00", document.Regular, bodySize), 0.0001)
			return
		}
	}
	t.Fatal("subtotal not drawn")
}

func TestRender_PageBreakRepeatsOnlyTableHeader(t *testing.T) {
	r := newTestRenderer(t)
	rc := sampleReceipt(40)

	doc := r.Render(rc, nil)

	require.Greater(t, len(doc.Pages), 1)
	for i, p := range doc.Pages {
		assert.Contains(t, p.Texts(), "DETALLE", "page %d", i)
	}
	texts := doc.Texts()
	assert.Equal(t, 1, count(texts, "COMPROBANTE DE VENTA"))
	assert.Equal(t, 1, count(texts, "N° V-000123"))
	assert.Equal(t, 40, count(texts, "12.50"))
	assert.Equal(t, 1, count(texts, "Gracias por su preferencia."))

	last := doc.Pages[len(doc.Pages)-1].Texts()
	assert.Contains(t, last, "TOTAL")
	assert.Contains(t, last, "Bs. 1000.00")

	for _, p := range doc.Pages {
		for _, op := range p.Ops {
			if text, ok := op.(document.TextOp); ok {
				assert.LessOrEqual(t, text.Y, doc.Height-margin+20, text.Text)
			}
		}
	}
}

func TestRender_CustomBrandingAndLogo(t *testing.T) {
	b := domain.Branding{Name: "FARMACIA NORTE", Phone: "Tel: 1", Address: "Calle 1", Contact: "c@n.bo", Thanks: "Vuelva pronto"}
	r := newTestRenderer(t, WithBranding(b))
	logo := &document.Logo{Width: 200, Height: 140}

	doc := r.Render(sampleReceipt(1), logo)

	texts := doc.Texts()
	assert.Equal(t, 2, count(texts, "FARMACIA NORTE"))
	assert.Contains(t, texts, "Vuelva pronto")

	var img *document.ImageOp
	for _, op := range doc.Pages[0].Ops {
		if o, ok := op.(document.ImageOp); ok {
			img = &o
		}
	}
	require.NotNil(t, img)
	assert.InDelta(t, 70.0, img.H, 0.0001)
	assert.InDelta(t, 100.0, img.W, 0.0001)
}
