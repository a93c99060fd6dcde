package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// FilaKardex renglón tabular de un kardex, ya normalizado para render:
// cualquiera de los tres motores se proyecta a esta forma.
type FilaKardex struct {
	Fecha         time.Time
	Tipo          string
	Descripcion   string
	Entradas      decimal.Decimal
	Salidas       decimal.Decimal
	CostoUnitario decimal.Decimal
	Saldo         decimal.Decimal
}

// KardexReporte datos completos de un reporte de kardex.
type KardexReporte struct {
	Perfil      string
	Metodo      string // "PROMEDIO PONDERADO" | "PEPS" | "UEPS"
	Instancia   string
	Filas       []FilaKardex
	SaldoActual decimal.Decimal
	StockActual decimal.Decimal
}

// LibroDiarioReporte datos completos del libro diario más el estado del
// catálogo para los saldos y la ecuación contable.
type LibroDiarioReporte struct {
	Perfil   string
	Cuentas  []ledger.Cuenta
	Asientos []ledger.Transaccion
	Ecuacion ledger.Ecuacion
}

// ReportePDFGenerator define el puerto de salida para documentos PDF.
// Cualquier adaptador (Maroto, mock de test) debe implementar esta
// interfaz; la aplicación solo conoce el contrato.
type ReportePDFGenerator interface {
	GenerarKardexPDF(ctx context.Context, reporte KardexReporte) ([]byte, error)
	GenerarLibroDiarioPDF(ctx context.Context, reporte LibroDiarioReporte) ([]byte, error)
}

// LibroDiarioXMLExporter define el puerto de salida para la exportación
// XML del libro diario.
type LibroDiarioXMLExporter interface {
	ExportarLibroDiario(ctx context.Context, reporte LibroDiarioReporte) ([]byte, error)
}
