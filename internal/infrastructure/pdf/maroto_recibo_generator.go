// Package pdf implementa la generación del comprobante imprimible de una
// venta o cotización comprometida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Documento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre libre                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGOS: método → monto          TOTAL                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda según tipo de documento                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ventas.ReciboPDFGenerator = (*MarotoReciboGenerator)(nil)

// MarotoReciboGenerator implementa ventas.ReciboPDFGenerator usando Maroto v2.
type MarotoReciboGenerator struct {
	nombreNegocio string
}

// NewMarotoReciboGenerator construye el generador con el nombre del negocio
// que encabeza cada comprobante.
func NewMarotoReciboGenerator(nombreNegocio string) *MarotoReciboGenerator {
	if nombreNegocio == "" {
		nombreNegocio = "Gestor Moto Repuestos"
	}
	return &MarotoReciboGenerator{nombreNegocio: nombreNegocio}
}

// GenerarRecibo genera el PDF del comprobante y devuelve sus bytes.
// productos mapea producto_id → producto para resolver nombres en la tabla.
func (g *MarotoReciboGenerator) GenerarRecibo(venta *entity.Venta, productos map[string]*entity.Producto) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tituloDocumento(venta.Tipo), true).
		WithAuthor(g.nombreNegocio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(venta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(venta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(venta.Items, productos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalesRow(venta))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(venta))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y tipo + ID + fecha (der).
func (g *MarotoReciboGenerator) headerRow(venta *entity.Venta) core.Row {
	fecha := venta.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.nombreNegocio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Repuestos y accesorios para motocicletas", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(tituloDocumento(venta.Tipo)), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+venta.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: nombre libre del cliente, sin registro maestro detrás.
func clienteRow(venta *entity.Venta) core.Row {
	cliente := venta.Cliente
	if cliente == "" {
		cliente = "Cliente de mostrador"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por item de la venta.
func tableItemRows(items []*entity.ItemVenta, productos map[string]*entity.Producto) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		nombre := it.ProductoID
		if p, ok := productos[it.ProductoID]; ok && p != nil {
			nombre = p.Nombre
			if p.Codigo != "" {
				nombre = p.Codigo + " — " + p.Nombre
			}
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"S/ "+it.PrecioVentaUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"S/ "+it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalesRow: pagos por método (izq) y total (der).
func totalesRow(venta *entity.Venta) core.Row {
	pagosCol := col.New(6)
	top := 1.0
	for _, p := range venta.Pagos {
		pagosCol.Add(text.New(
			fmt.Sprintf("%s: S/ %s", capitalizar(p.Metodo), p.Monto.StringFixed(2)),
			props.Text{Size: 8, Top: top, Color: colorGray},
		))
		top += 5
	}

	return row.New(26).Add(
		pagosCol,
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 8, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("S/ "+venta.TotalMonto.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 8, Right: 1,
			}),
		),
	)
}

// footerRow: leyenda según el tipo y estado del documento.
func footerRow(venta *entity.Venta) core.Row {
	leyenda := "Gracias por su compra. Este comprobante no tiene valor tributario."
	if venta.Tipo == entity.DocCotizacion && venta.Estado != entity.EstadoCompletada {
		leyenda = "Cotización con mercadería reservada. Válida hasta confirmar el pago."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(leyenda, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
	))
}

func capitalizar(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tituloDocumento(tipo string) string {
	if tipo == entity.DocCotizacion {
		return "Cotización"
	}
	return "Nota de Venta"
}
