// Package pdf genera el albarán de un pedido en PDF para el panel de admin.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: BielsaSys  │  N° Pedido + Fecha + Estado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Empresa + Email                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Precio unit. | Subtotal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PEDIDO                                           │
//	│  NOTA / FECHA DE ENTREGA SOLICITADA                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bielsasys/pedidos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// es formatea importes con separadores españoles (1.234,56).
var es = message.NewPrinter(language.Spanish)

// MarotoPDFGenerator implementa usecase.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	CompanyName string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{CompanyName: companyName}
}

// GenerateOrderPDF genera el albarán del pedido y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Albarán pedido #%d", order.ID), true).
		WithAuthor(g.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.CompanyName, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order.Total))

	if order.Note != "" || order.DeliveryDate != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(order))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y número, fecha y estado del pedido (der).
func headerRow(companyName string, order *entity.Order) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Albarán de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("PEDIDO #%d", order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+order.Estado, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos desnormalizados del cliente tal como eran al colocar el pedido.
func clientRow(order *entity.Order) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Empresa: %s   |   Email: %s",
				nonEmpty(order.ClientCompany, "—"),
				nonEmpty(order.ClientEmail, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del pedido.
func tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String()+" "+it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Product,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatEuros(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatEuros(it.Subtotal().Round(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del pedido alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DEL PEDIDO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatEuros(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// notesRow: nota del cliente y fecha de entrega solicitada.
func notesRow(order *entity.Order) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Nota: %s   |   Entrega solicitada: %s",
				nonEmpty(order.Note, "—"),
				nonEmpty(order.DeliveryDate, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuros presenta un importe con formato español: "1.234,56 €".
func formatEuros(d decimal.Decimal) string {
	f, _ := d.Float64()
	return es.Sprintf("%.2f €", f)
}
