package kardex

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// EdicionLote campos editables de una operación PEPS/UEPS. El tipo de la
// operación no puede cambiarse; CostoUnitario solo aplica a saldo inicial y
// compras (en ventas y devoluciones el costo es derivado).
type EdicionLote struct {
	Fecha         time.Time
	Descripcion   string
	Unidades      decimal.Decimal
	CostoUnitario *decimal.Decimal
}

func (in EntradaLote) validar() error {
	if in.OperacionID == "" || in.LoteID == "" {
		return domain.ErrEntradaInvalida
	}
	if !in.Unidades.GreaterThan(decimal.Zero) {
		return domain.ErrUnidadesInvalidas
	}
	if !in.CostoUnitario.GreaterThan(decimal.Zero) {
		return domain.ErrCostoInvalido
	}
	return nil
}

// entradaLoteDe recupera los insumos originales de una operación de saldo
// inicial o compra; el lote creado quedó registrado como su único sub-lote.
func entradaLoteDe(op OperacionLote) EntradaLote {
	in := EntradaLote{
		OperacionID:   op.ID,
		Fecha:         op.Fecha,
		Descripcion:   op.Descripcion,
		Unidades:      op.Entradas,
		CostoUnitario: op.CostoUnitario,
	}
	if len(op.Lotes) > 0 {
		in.LoteID = op.Lotes[0].ID
		in.Nombre = op.Lotes[0].Nombre
	}
	return in
}

// editarOperacionLote aplica la edición sobre los insumos de la operación
// indicada y devuelve la lista lista para reconstruir. No valida montos:
// eso ocurre al reproducir el historial.
func editarOperacionLote(ops []OperacionLote, id string, ed EdicionLote) ([]OperacionLote, error) {
	idx := indiceOperacion(ops, id)
	if idx < 0 {
		return nil, domain.ErrOperacionNoEncontrada
	}
	nuevas := make([]OperacionLote, len(ops))
	copy(nuevas, ops)
	op := &nuevas[idx]
	op.Fecha = ed.Fecha
	op.Descripcion = ed.Descripcion

	switch op.Tipo {
	case SaldoInicial, Compra:
		op.Entradas = ed.Unidades
		if ed.CostoUnitario != nil {
			op.CostoUnitario = *ed.CostoUnitario
		}
		// El sub-lote registrado conserva id y nombre; unidades y costo se
		// rehacen al reconstruir.
	case Venta, DevolucionCompra:
		op.Salidas = ed.Unidades
	case Devolucion:
		op.Entradas = ed.Unidades
	default:
		return nil, domain.ErrEntradaInvalida
	}
	return nuevas, nil
}
