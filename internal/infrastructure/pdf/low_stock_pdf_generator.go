// Package pdf genera el reporte imprimible de productos con stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación │ N° de productos      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Proveedor | Cant. | Mín. | Faltan     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de unidades faltantes                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var _ inventory.LowStockPDFGenerator = (*MarotoLowStockGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorAlert   = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLowStockGenerator implementa inventory.LowStockPDFGenerator usando Maroto v2.
type MarotoLowStockGenerator struct {
	appName string
}

// NewMarotoLowStockGenerator construye el generador. appName aparece como autor del documento.
func NewMarotoLowStockGenerator(appName string) *MarotoLowStockGenerator {
	return &MarotoLowStockGenerator{appName: appName}
}

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoLowStockGenerator) GenerateLowStockPDF(
	_ context.Context,
	products []*entity.Product,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(products), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin productos con stock bajo.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(count int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(strconv.Itoa(count)+" producto(s)", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Proveedor", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Faltan", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por producto; la cantidad se resalta si está en cero.
func tableDetailRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		qtyStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if p.Quantity == 0 {
			qtyStyle.Style = fontstyle.Bold
			qtyStyle.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(p.Supplier, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(strconv.FormatInt(p.Quantity, 10), qtyStyle)),
			col.New(1).Add(text.New(strconv.FormatInt(p.MinStock, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(missing(p), 10), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func footerRow(products []*entity.Product) core.Row {
	var total int64
	for _, p := range products {
		total += missing(p)
	}
	return row.New(10).Add(
		col.New(9).Add(text.New("Total de unidades faltantes:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(strconv.FormatInt(total, 10), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// missing unidades necesarias para volver al mínimo (0 si quantity == min_stock).
func missing(p *entity.Product) int64 {
	if d := p.MinStock - p.Quantity; d > 0 {
		return d
	}
	return 0
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
