package dto

import "github.com/shopspring/decimal"

// CuentaRequest datos de una cuenta (creación y actualización).
type CuentaRequest struct {
	Nombre       string `json:"nombre"`
	Codigo       string `json:"codigo"`
	Tipo         string `json:"tipo"`       // activo | pasivo | capital | ingreso | gasto
	Naturaleza   string `json:"naturaleza"` // deudora | acreedora
	Subcategoria string `json:"subcategoria"`
}

// PartidaRequest línea de un asiento: débito o crédito contra una cuenta.
type PartidaRequest struct {
	CuentaID string          `json:"cuenta_id"`
	Debe     decimal.Decimal `json:"debe"`
	Haber    decimal.Decimal `json:"haber"`
}

// TransaccionRequest asiento de diario por registrar.
type TransaccionRequest struct {
	Fecha       string           `json:"fecha"` // YYYY-MM-DD; vacía = hoy
	Descripcion string           `json:"descripcion"`
	Partidas    []PartidaRequest `json:"partidas"`
}
