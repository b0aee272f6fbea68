package document

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

const producer = "Pharmacy reports"

// Serialize writes the document as PDF bytes. The creation date comes from
// the document, so identical documents serialize identically.
func Serialize(doc *Document) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetCreationDate(doc.Created)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(producer, true)

	s := &serializer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		images:    map[*Logo]string{},
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			s.draw(op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

type serializer struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	images    map[*Logo]string
}

func (s *serializer) draw(op Op) {
	switch o := op.(type) {
	case TextOp:
		s.pdf.SetFont(fontFamily, o.Font.style(), o.Size)
		s.pdf.SetTextColor(channel(o.Color.R), channel(o.Color.G), channel(o.Color.B))
		s.pdf.Text(o.X, o.Y, s.translate(o.Text))
	case RectOp:
		s.pdf.SetFillColor(channel(o.Fill.R), channel(o.Fill.G), channel(o.Fill.B))
		s.pdf.Rect(o.X, o.Y, o.W, o.H, "F")
	case LineOp:
		s.pdf.SetLineWidth(o.Width)
		s.pdf.SetDrawColor(channel(o.Color.R), channel(o.Color.G), channel(o.Color.B))
		s.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
	case ImageOp:
		if o.Image == nil {
			return
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		name, ok := s.images[o.Image]
		if !ok {
			name = fmt.Sprintf("logo%d", len(s.images))
			s.images[o.Image] = name
			s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(o.Image.Data))
		}
		s.pdf.ImageOptions(name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
	}
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
