package export

import (
	"fmt"
	"io"
	"os"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Reporter prints report tables and command results to the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Table writes t as a light box table with a row count footer.
func (c *Reporter) Table(t *domain.Table) error {
	tw := newWriter(c.writer)
	tw.SetTitle(t.Title)

	header := make(table.Row, len(t.Columns))
	configs := make([]table.ColumnConfig, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align(col.Align)}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, r := range t.Rows {
		row := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = r.Get(col.Key)
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("Total: %s filas", humanize.Comma(int64(len(t.Rows))))})

	tw.Render()
	return nil
}

// Kinds lists the available report kinds.
func (c *Reporter) Kinds(kinds []domain.KindInfo) error {
	tw := newWriter(c.writer)
	tw.AppendHeader(table.Row{"Tipo", "Título", "Columnas"})
	for _, k := range kinds {
		tw.AppendRow(table.Row{string(k.ID), k.Title, len(k.Columns)})
	}
	tw.Render()
	return nil
}

// Saved reports a file written to disk.
func (c *Reporter) Saved(path string, size int) {
	color.New(color.FgGreen).Fprintf(c.writer, "Archivo generado: %s (%s)\n", path, humanize.Bytes(uint64(size)))
}

// Receipt reports a receipt stored in blob storage.
func (c *Reporter) Receipt(r *domain.StoredReceipt) {
	color.New(color.FgGreen).Fprintf(c.writer, "Comprobante %s-%s registrado (id %d)\n", r.Series, r.Number, r.ID)
	fmt.Fprintf(c.writer, "  Ruta: %s\n", r.StoragePath)
	if r.SignedURL != nil {
		color.New(color.FgCyan).Fprintf(c.writer, "  URL: %s\n", *r.SignedURL)
	}
}

// newWriter keeps headers and footers in the case they were written in.
func newWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

func align(a domain.Align) text.Align {
	if a == domain.AlignRight {
		return text.AlignRight
	}
	return text.AlignLeft
}
