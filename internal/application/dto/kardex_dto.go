package dto

import "github.com/shopspring/decimal"

// OperacionPromedioRequest operación del kardex por promedio ponderado.
// CostoUnitario es obligatorio en SALDO_INICIAL y COMPRA.
type OperacionPromedioRequest struct {
	Fecha         string           `json:"fecha"` // YYYY-MM-DD; vacía = hoy
	Tipo          string           `json:"tipo"`  // SALDO_INICIAL | COMPRA | VENTA | DEVOLUCION
	Descripcion   string           `json:"descripcion"`
	Unidades      decimal.Decimal  `json:"unidades"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
}

// EntradaLoteRequest saldo inicial o compra en un motor de lotes.
type EntradaLoteRequest struct {
	Fecha         string          `json:"fecha"`
	Nombre        string          `json:"nombre"` // nombre del lote
	Descripcion   string          `json:"descripcion"`
	Unidades      decimal.Decimal `json:"unidades"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

// VentaRequest venta en un motor de lotes.
type VentaRequest struct {
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Unidades    decimal.Decimal `json:"unidades"`
}

// DevolucionRequest devolución dirigida a un lote específico (de venta en
// PEPS/UEPS, de compra solo en UEPS).
type DevolucionRequest struct {
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	LoteID      string          `json:"lote_id"`
	Unidades    decimal.Decimal `json:"unidades"`
}

// EdicionOperacionRequest campos editables de una operación de lotes.
type EdicionOperacionRequest struct {
	Fecha         string           `json:"fecha"`
	Descripcion   string           `json:"descripcion"`
	Unidades      decimal.Decimal  `json:"unidades"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
}
