// Package kardex implementa los tres motores de valuación de inventario:
// costo promedio ponderado, PEPS (primeras en entrar, primeras en salir) y
// UEPS (últimas en entrar, primeras en salir). Igual que el libro contable,
// cada motor es una máquina de transiciones puras sobre un snapshot: toda
// cifra derivada (stock, saldo, costo) se reconstruye de forma determinista
// a partir del historial de operaciones.
package kardex

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoOperacion es el tipo cerrado de variantes de operación de kardex.
// Los valores de cadena se conservan tal cual por compatibilidad con los
// snapshots almacenados.
type TipoOperacion string

const (
	SaldoInicial     TipoOperacion = "SALDO_INICIAL"
	Compra           TipoOperacion = "COMPRA"
	Venta            TipoOperacion = "VENTA"
	Devolucion       TipoOperacion = "DEVOLUCION"
	DevolucionCompra TipoOperacion = "DEVOLUCION_COMPRA"
)

// Valido reporta si el tipo es una de las variantes admitidas.
func (t TipoOperacion) Valido() bool {
	switch t {
	case SaldoInicial, Compra, Venta, Devolucion, DevolucionCompra:
		return true
	default:
		return false
	}
}

// redondear normaliza una cifra monetaria a la unidad entera de moneda más
// cercana. El motor promedio la aplica después de cada paso; es una regla
// de normalización deliberada que pierde precisión pero debe conservarse
// para paridad con los datos ya almacenados.
func redondear(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Lote es una partida de inventario con un costo de adquisición único.
// UnidadesRestantes baja con ventas y devoluciones de compra y sube con
// devoluciones de venta; un lote nunca se elimina físicamente, solo se
// agota a cero.
type Lote struct {
	ID                string          `json:"id"`
	Fecha             time.Time       `json:"fecha"`
	Nombre            string          `json:"nombre"`
	Unidades          decimal.Decimal `json:"unidades"`
	UnidadesRestantes decimal.Decimal `json:"unidadesRestantes"`
	CostoUnitario     decimal.Decimal `json:"costoUnitario"`
	Tipo              TipoOperacion   `json:"tipo"`
}

// OperacionLote es el registro de auditoría de una operación PEPS/UEPS.
// Lotes guarda los sub-lotes creados o consumidos por esta operación (con
// la cantidad realmente tomada y su costo), de modo que el historial basta
// para reconstruir el estado completo de los lotes.
type OperacionLote struct {
	ID             string          `json:"id"`
	Fecha          time.Time       `json:"fecha"`
	Tipo           TipoOperacion   `json:"tipo"`
	Descripcion    string          `json:"descripcion"`
	Lotes          []Lote          `json:"lotes,omitempty"`
	Entradas       decimal.Decimal `json:"entradas"`
	Salidas        decimal.Decimal `json:"salidas"`
	Saldo          decimal.Decimal `json:"saldo"`
	CostoUnitario  decimal.Decimal `json:"costoUnitario"`
	CostoTotal     decimal.Decimal `json:"costoTotal"`
	LoteObjetivoID string          `json:"loteObjetivoId,omitempty"`
}

// EntradaLote datos de un saldo inicial o compra en un motor de lotes.
// OperacionID y LoteID vienen asignados por el caller (la capa de
// aplicación genera UUIDs) para que la reconstrucción del historial
// preserve identidades.
type EntradaLote struct {
	OperacionID   string
	LoteID        string
	Fecha         time.Time
	Nombre        string
	Descripcion   string
	Unidades      decimal.Decimal
	CostoUnitario decimal.Decimal
}

// EntradaVenta datos de una venta.
type EntradaVenta struct {
	OperacionID string
	Fecha       time.Time
	Descripcion string
	Unidades    decimal.Decimal
}

// EntradaDevolucion datos de una devolución dirigida a un lote específico.
type EntradaDevolucion struct {
	OperacionID string
	Fecha       time.Time
	Descripcion string
	LoteID      string
	Unidades    decimal.Decimal
}
