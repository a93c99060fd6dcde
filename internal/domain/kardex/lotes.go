package kardex

import (
	"github.com/shopspring/decimal"
)

// Helpers compartidos por los motores PEPS y UEPS. Ambos consumen lotes "en
// orden de lista": PEPS anexa lotes al final (el frente es el más antiguo) y
// UEPS los antepone (el frente es el más nuevo), así que el mismo recorrido
// produce las dos disciplinas.

// consumirLotes descuenta unidades recorriendo los lotes desde el frente,
// agotando cada uno antes de pasar al siguiente. Devuelve los lotes ya
// descontados, los sub-lotes consumidos (con la cantidad realmente tomada y
// el costo de su lote, tipados como VENTA para el registro de auditoría) y
// el costo total de la salida. El caller valida antes que haya stock
// suficiente.
func consumirLotes(lotes []Lote, unidades decimal.Decimal) (actualizados []Lote, consumidos []Lote, costoTotal decimal.Decimal) {
	actualizados = make([]Lote, len(lotes))
	copy(actualizados, lotes)
	costoTotal = decimal.Zero
	pendiente := unidades

	for i := range actualizados {
		if !pendiente.GreaterThan(decimal.Zero) {
			break
		}
		lote := &actualizados[i]
		if !lote.UnidadesRestantes.GreaterThan(decimal.Zero) {
			continue
		}
		tomado := decimal.Min(lote.UnidadesRestantes, pendiente)
		lote.UnidadesRestantes = lote.UnidadesRestantes.Sub(tomado)
		pendiente = pendiente.Sub(tomado)
		costoTotal = costoTotal.Add(tomado.Mul(lote.CostoUnitario))
		consumidos = append(consumidos, Lote{
			ID:            lote.ID,
			Fecha:         lote.Fecha,
			Nombre:        lote.Nombre,
			Unidades:      tomado,
			CostoUnitario: lote.CostoUnitario,
			Tipo:          Venta,
		})
	}
	return actualizados, consumidos, costoTotal
}

// unidadesDisponibles suma las unidades restantes de todos los lotes.
func unidadesDisponibles(lotes []Lote) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lotes {
		total = total.Add(l.UnidadesRestantes)
	}
	return total
}

// vendidoDelLote suma, a través de todas las ventas del historial, las
// unidades que salieron del lote indicado.
func vendidoDelLote(ops []OperacionLote, loteID string) decimal.Decimal {
	total := decimal.Zero
	for _, op := range ops {
		if op.Tipo != Venta {
			continue
		}
		for _, sub := range op.Lotes {
			if sub.ID == loteID {
				total = total.Add(sub.Unidades)
			}
		}
	}
	return total
}

// devueltoAlLote suma las unidades ya devueltas (devolución de venta) al
// lote indicado.
func devueltoAlLote(ops []OperacionLote, loteID string) decimal.Decimal {
	total := decimal.Zero
	for _, op := range ops {
		if op.Tipo == Devolucion && op.LoteObjetivoID == loteID {
			total = total.Add(op.Entradas)
		}
	}
	return total
}

// indiceLote busca un lote por id.
func indiceLote(lotes []Lote, id string) int {
	for i, l := range lotes {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// indiceOperacion busca una operación por id.
func indiceOperacion(ops []OperacionLote, id string) int {
	for i, op := range ops {
		if op.ID == id {
			return i
		}
	}
	return -1
}

// tieneSaldoInicial reporta si el historial ya registra un SALDO_INICIAL.
func tieneSaldoInicial(ops []OperacionLote) bool {
	for _, op := range ops {
		if op.Tipo == SaldoInicial {
			return true
		}
	}
	return false
}
