// Package pdf genera los reportes imprimibles con Maroto v2.
//
// Layout del kardex (A4 apaisado conceptual, en vertical):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + método de valuación + instancia            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Operación | Detalle | Entradas | Salidas |   │
//	│         C.Unit | Saldo                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Stock actual / Saldo valorado                      │
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
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportePDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerarKardexPDF genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerarKardexPDF(_ context.Context, reporte ports.KardexReporte) ([]byte, error) {
	m := maroto.New(baseConfig("Kardex de Inventario"))

	m.AddRows(tituloRow("KARDEX DE INVENTARIO", fmt.Sprintf("Método: %s   |   Instancia: %s", reporte.Metodo, reporte.Instancia)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(kardexHeaderRow())
	for _, fila := range reporte.Filas {
		m.AddRows(kardexDetailRow(fila))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Stock actual:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}),
			text.New("Saldo valorado:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(reporte.StockActual.String(), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("$"+formatMoney(reporte.SaldoActual.StringFixed(0)), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 5, Color: colorPrimary}),
		),
	))

	return generar(m)
}

// GenerarLibroDiarioPDF genera el PDF del libro diario y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerarLibroDiarioPDF(_ context.Context, reporte ports.LibroDiarioReporte) ([]byte, error) {
	m := maroto.New(baseConfig("Libro Diario"))

	m.AddRows(tituloRow("LIBRO DIARIO", fmt.Sprintf("%d asientos registrados", len(reporte.Asientos))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	nombres := nombresCuentas(reporte.Cuentas)
	for _, tx := range reporte.Asientos {
		m.AddRows(asientoHeaderRow(tx))
		for _, p := range tx.Partidas {
			m.AddRows(partidaRow(nombres[p.CuentaID], p))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	// Ecuación contable al pie
	ec := reporte.Ecuacion
	estado := "CUADRADA"
	if !ec.Cuadra {
		estado = "DESCUADRADA"
	}
	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New("ECUACIÓN CONTABLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Activos: $%s   |   Pasivos: $%s   |   Capital: $%s   |   Estado: %s",
			formatMoney(ec.Activos.StringFixed(0)),
			formatMoney(ec.Pasivos.StringFixed(0)),
			formatMoney(ec.Capital.StringFixed(0)),
			estado,
		), props.Text{Size: 8, Top: 7, Color: colorGray}),
	)))

	return generar(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func baseConfig(titulo string) *coreentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()
}

func tituloRow(titulo, subtitulo string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(subtitulo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
	)
}

func kardexHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Operación", 2, align.Left),
		h("Detalle", 3, align.Left),
		h("Entradas", 1, align.Right),
		h("Salidas", 1, align.Right),
		h("C.Unit", 1, align.Right),
		h("Saldo", 2, align.Right),
	)
}

func kardexDetailRow(fila ports.FilaKardex) core.Row {
	celda := func(valor string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		celda(fila.Fecha.Format("02/01/2006"), 2, align.Left),
		celda(fila.Tipo, 2, align.Left),
		celda(fila.Descripcion, 3, align.Left),
		celda(cantidad(fila.Entradas), 1, align.Right),
		celda(cantidad(fila.Salidas), 1, align.Right),
		celda(fila.CostoUnitario.StringFixed(0), 1, align.Right),
		celda("$"+formatMoney(fila.Saldo.StringFixed(0)), 2, align.Right),
	)
}

func asientoHeaderRow(tx ledger.Transaccion) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(tx.Fecha.Format("02/01/2006"), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(7).Add(text.New(tx.Descripcion, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(3).Add(text.New("$"+formatMoney(tx.TotalDebe().StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func partidaRow(cuenta string, p ledger.Partida) core.Row {
	if cuenta == "" {
		cuenta = p.CuentaID
	}
	return row.New(6).Add(
		col.New(6).Add(text.New(cuenta, props.Text{Size: 8, Left: 4, Top: 1, Color: colorGray})),
		col.New(3).Add(text.New(cantidadMonetaria(p.Debe), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(cantidadMonetaria(p.Haber), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func generar(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nombresCuentas(cuentas []ledger.Cuenta) map[string]string {
	nombres := make(map[string]string, len(cuentas))
	for _, c := range cuentas {
		nombres[c.ID] = c.Nombre
	}
	return nombres
}

func cantidad(d decimal.Decimal) string {
	if d.IsZero() {
		return "—"
	}
	return d.String()
}

func cantidadMonetaria(d decimal.Decimal) string {
	if d.IsZero() {
		return "—"
	}
	return "$" + formatMoney(d.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
