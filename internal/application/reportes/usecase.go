// Package reportes proyecta los snapshots de contabilidad e inventario a
// documentos exportables: kardex y libro diario en PDF, libro diario en XML.
package reportes

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/contabilidad"
	"github.com/jhoicas/Contable-api/internal/application/inventario"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso de reportes.
type UseCase struct {
	contabilidad *contabilidad.UseCase
	inventario   *inventario.UseCase
	pdf          ports.ReportePDFGenerator
	xml          ports.LibroDiarioXMLExporter
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(cont *contabilidad.UseCase, inv *inventario.UseCase, pdf ports.ReportePDFGenerator, xml ports.LibroDiarioXMLExporter) *UseCase {
	return &UseCase{contabilidad: cont, inventario: inv, pdf: pdf, xml: xml}
}

// KardexPDF genera el PDF del kardex indicado por método e instancia.
func (uc *UseCase) KardexPDF(ctx context.Context, perfilID, metodo, instancia string) ([]byte, error) {
	reporte, err := uc.kardexReporte(ctx, perfilID, metodo, instancia)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerarKardexPDF(ctx, reporte)
}

// LibroDiarioPDF genera el PDF del libro diario del perfil.
func (uc *UseCase) LibroDiarioPDF(ctx context.Context, perfilID string) ([]byte, error) {
	reporte, err := uc.libroReporte(ctx, perfilID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerarLibroDiarioPDF(ctx, reporte)
}

// LibroDiarioXML exporta el libro diario del perfil como XML.
func (uc *UseCase) LibroDiarioXML(ctx context.Context, perfilID string) ([]byte, error) {
	reporte, err := uc.libroReporte(ctx, perfilID)
	if err != nil {
		return nil, err
	}
	return uc.xml.ExportarLibroDiario(ctx, reporte)
}

func (uc *UseCase) kardexReporte(ctx context.Context, perfilID, metodo, instancia string) (ports.KardexReporte, error) {
	if instancia == "" {
		instancia = inventario.InstanciaPrincipal
	}
	reporte := ports.KardexReporte{Perfil: perfilID, Instancia: instancia}
	switch metodo {
	case "promedio":
		estado, err := uc.inventario.Promedio(ctx, perfilID, instancia)
		if err != nil {
			return ports.KardexReporte{}, err
		}
		reporte.Metodo = "PROMEDIO PONDERADO"
		reporte.Filas = filasPromedio(estado.Operaciones)
		reporte.SaldoActual = estado.SaldoActual
		reporte.StockActual = estado.StockActual
	case "peps":
		estado, err := uc.inventario.PEPS(ctx, perfilID, instancia)
		if err != nil {
			return ports.KardexReporte{}, err
		}
		reporte.Metodo = "PEPS"
		reporte.Filas = filasLotes(estado.Operaciones)
		reporte.SaldoActual = estado.SaldoActual
		reporte.StockActual = stockLotes(estado.Lotes)
	case "ueps":
		estado, err := uc.inventario.UEPS(ctx, perfilID, instancia)
		if err != nil {
			return ports.KardexReporte{}, err
		}
		reporte.Metodo = "UEPS"
		reporte.Filas = filasLotes(estado.Operaciones)
		reporte.SaldoActual = estado.SaldoActual
		reporte.StockActual = stockLotes(estado.Lotes)
	default:
		return ports.KardexReporte{}, domain.ErrEntradaInvalida
	}
	return reporte, nil
}

func (uc *UseCase) libroReporte(ctx context.Context, perfilID string) (ports.LibroDiarioReporte, error) {
	estado, err := uc.contabilidad.Libro(ctx, perfilID)
	if err != nil {
		return ports.LibroDiarioReporte{}, err
	}
	return ports.LibroDiarioReporte{
		Perfil:   perfilID,
		Cuentas:  estado.Cuentas,
		Asientos: estado.Transacciones,
		Ecuacion: estado.EcuacionContable(),
	}, nil
}

func filasPromedio(ops []kardex.OperacionPromedio) []ports.FilaKardex {
	filas := make([]ports.FilaKardex, 0, len(ops))
	for _, op := range ops {
		fila := ports.FilaKardex{
			Fecha:         op.Fecha,
			Tipo:          string(op.Tipo),
			Descripcion:   op.Descripcion,
			CostoUnitario: op.CostoPromedio,
			Saldo:         op.Saldo,
		}
		switch op.Tipo {
		case kardex.SaldoInicial, kardex.Compra:
			fila.Entradas = op.Unidades
		default:
			fila.Salidas = op.Unidades
		}
		filas = append(filas, fila)
	}
	return filas
}

func filasLotes(ops []kardex.OperacionLote) []ports.FilaKardex {
	filas := make([]ports.FilaKardex, 0, len(ops))
	for _, op := range ops {
		filas = append(filas, ports.FilaKardex{
			Fecha:         op.Fecha,
			Tipo:          string(op.Tipo),
			Descripcion:   op.Descripcion,
			Entradas:      op.Entradas,
			Salidas:       op.Salidas,
			CostoUnitario: op.CostoUnitario,
			Saldo:         op.Saldo,
		})
	}
	return filas
}

func stockLotes(lotes []kardex.Lote) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lotes {
		total = total.Add(l.UnidadesRestantes)
	}
	return total
}
