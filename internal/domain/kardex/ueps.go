package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// EstadoUEPS snapshot del kardex UEPS (últimas en entrar, primeras en
// salir). Los lotes nuevos se anteponen al frente de la lista, de modo que
// el mismo recorrido en orden de lista consume primero el más reciente.
// A diferencia de PEPS distingue dos devoluciones: la de venta (reingresa
// unidades al lote original) y la de compra (revierte unidades de un lote
// comprado).
type EstadoUEPS struct {
	Lotes       []Lote          `json:"lotes"`
	Operaciones []OperacionLote `json:"operaciones"`
	SaldoActual decimal.Decimal `json:"saldoActual"`
}

// AgregarSaldoInicial registra el único saldo inicial admitido.
func (e EstadoUEPS) AgregarSaldoInicial(in EntradaLote) (EstadoUEPS, error) {
	if tieneSaldoInicial(e.Operaciones) {
		return e, domain.ErrSaldoInicialDuplicado
	}
	if err := in.validar(); err != nil {
		return e, err
	}
	return e.agregarLote(in, SaldoInicial), nil
}

// AgregarCompra antepone un lote nuevo al frente de la lista.
func (e EstadoUEPS) AgregarCompra(in EntradaLote) (EstadoUEPS, error) {
	if !tieneSaldoInicial(e.Operaciones) {
		return e, domain.ErrSinSaldoInicial
	}
	if err := in.validar(); err != nil {
		return e, err
	}
	return e.agregarLote(in, Compra), nil
}

// AgregarVenta consume unidades del lote más reciente hacia el más antiguo,
// agotando cada lote antes de pasar al siguiente.
func (e EstadoUEPS) AgregarVenta(in EntradaVenta) (EstadoUEPS, error) {
	if in.OperacionID == "" {
		return e, domain.ErrEntradaInvalida
	}
	if !in.Unidades.GreaterThan(decimal.Zero) {
		return e, domain.ErrUnidadesInvalidas
	}
	if in.Unidades.GreaterThan(unidadesDisponibles(e.Lotes)) {
		return e, domain.ErrStockInsuficiente
	}

	lotes, consumidos, costoTotal := consumirLotes(e.Lotes, in.Unidades)

	nuevo := e.clonar()
	nuevo.Lotes = lotes
	nuevo.SaldoActual = nuevo.SaldoActual.Sub(costoTotal)
	nuevo.Operaciones = append(nuevo.Operaciones, OperacionLote{
		ID:            in.OperacionID,
		Fecha:         in.Fecha,
		Tipo:          Venta,
		Descripcion:   in.Descripcion,
		Lotes:         consumidos,
		Salidas:       in.Unidades,
		Saldo:         nuevo.SaldoActual,
		CostoUnitario: costoTotal.Div(in.Unidades),
		CostoTotal:    costoTotal,
	})
	return nuevo, nil
}

// AgregarDevolucion devolución de venta: localiza las ventas que tomaron
// unidades del lote indicado y valida que lo devuelto no exceda lo que
// salió de ese lote menos lo ya devuelto; luego el lote original recupera
// las unidades.
func (e EstadoUEPS) AgregarDevolucion(in EntradaDevolucion) (EstadoUEPS, error) {
	if in.OperacionID == "" {
		return e, domain.ErrEntradaInvalida
	}
	if !in.Unidades.GreaterThan(decimal.Zero) {
		return e, domain.ErrUnidadesInvalidas
	}
	idx := indiceLote(e.Lotes, in.LoteID)
	if idx < 0 {
		return e, domain.ErrLoteNoEncontrado
	}

	disponible := vendidoDelLote(e.Operaciones, in.LoteID).Sub(devueltoAlLote(e.Operaciones, in.LoteID))
	if in.Unidades.GreaterThan(disponible) {
		return e, domain.ErrDevolucionExcedida
	}

	nuevo := e.clonar()
	lote := &nuevo.Lotes[idx]
	lote.UnidadesRestantes = lote.UnidadesRestantes.Add(in.Unidades)
	costoTotal := in.Unidades.Mul(lote.CostoUnitario)
	nuevo.SaldoActual = nuevo.SaldoActual.Add(costoTotal)
	nuevo.Operaciones = append(nuevo.Operaciones, OperacionLote{
		ID:             in.OperacionID,
		Fecha:          in.Fecha,
		Tipo:           Devolucion,
		Descripcion:    in.Descripcion,
		Entradas:       in.Unidades,
		Saldo:          nuevo.SaldoActual,
		CostoUnitario:  lote.CostoUnitario,
		CostoTotal:     costoTotal,
		LoteObjetivoID: in.LoteID,
	})
	return nuevo, nil
}

// AgregarDevolucionCompra devolución de compra: revierte unidades de un
// lote comprado (o del saldo inicial) en lugar de revertir una venta. Las
// unidades salen del lote y el saldo baja al costo del lote. Es una
// operación distinta de la devolución de venta y se modela por separado.
func (e EstadoUEPS) AgregarDevolucionCompra(in EntradaDevolucion) (EstadoUEPS, error) {
	if in.OperacionID == "" {
		return e, domain.ErrEntradaInvalida
	}
	if !in.Unidades.GreaterThan(decimal.Zero) {
		return e, domain.ErrUnidadesInvalidas
	}
	idx := indiceLote(e.Lotes, in.LoteID)
	if idx < 0 {
		return e, domain.ErrLoteNoEncontrado
	}
	if in.Unidades.GreaterThan(e.Lotes[idx].UnidadesRestantes) {
		return e, domain.ErrStockInsuficiente
	}

	nuevo := e.clonar()
	lote := &nuevo.Lotes[idx]
	lote.UnidadesRestantes = lote.UnidadesRestantes.Sub(in.Unidades)
	costoTotal := in.Unidades.Mul(lote.CostoUnitario)
	nuevo.SaldoActual = nuevo.SaldoActual.Sub(costoTotal)
	nuevo.Operaciones = append(nuevo.Operaciones, OperacionLote{
		ID:             in.OperacionID,
		Fecha:          in.Fecha,
		Tipo:           DevolucionCompra,
		Descripcion:    in.Descripcion,
		Salidas:        in.Unidades,
		Saldo:          nuevo.SaldoActual,
		CostoUnitario:  lote.CostoUnitario,
		CostoTotal:     costoTotal,
		LoteObjetivoID: in.LoteID,
	})
	return nuevo, nil
}

// EliminarOperacion quita una operación y reconstruye el historial
// completo. El saldo inicial nunca es eliminable.
func (e EstadoUEPS) EliminarOperacion(id string) (EstadoUEPS, error) {
	idx := indiceOperacion(e.Operaciones, id)
	if idx < 0 {
		return e, domain.ErrOperacionNoEncontrada
	}
	if e.Operaciones[idx].Tipo == SaldoInicial {
		return e, domain.ErrSaldoInicialNoEliminable
	}
	restantes := make([]OperacionLote, 0, len(e.Operaciones)-1)
	restantes = append(restantes, e.Operaciones[:idx]...)
	restantes = append(restantes, e.Operaciones[idx+1:]...)

	nuevo, err := reconstruirUEPS(restantes)
	if err != nil {
		return e, domain.ErrHistorialInconsistente
	}
	return nuevo, nil
}

// EditarOperacion reemplaza los insumos editables según el tipo y
// reconstruye todo el historial.
func (e EstadoUEPS) EditarOperacion(id string, ed EdicionLote) (EstadoUEPS, error) {
	ops, err := editarOperacionLote(e.Operaciones, id, ed)
	if err != nil {
		return e, err
	}
	nuevo, err := reconstruirUEPS(ops)
	if err != nil {
		return e, domain.ErrHistorialInconsistente
	}
	return nuevo, nil
}

// agregarLote crea el lote y lo antepone al frente (orden UEPS); la
// operación registra el lote creado como su único sub-lote.
func (e EstadoUEPS) agregarLote(in EntradaLote, tipo TipoOperacion) EstadoUEPS {
	lote := Lote{
		ID:                in.LoteID,
		Fecha:             in.Fecha,
		Nombre:            in.Nombre,
		Unidades:          in.Unidades,
		UnidadesRestantes: in.Unidades,
		CostoUnitario:     in.CostoUnitario,
		Tipo:              tipo,
	}
	costoTotal := in.Unidades.Mul(in.CostoUnitario)

	nuevo := e.clonar()
	nuevo.Lotes = append([]Lote{lote}, nuevo.Lotes...)
	nuevo.SaldoActual = nuevo.SaldoActual.Add(costoTotal)
	nuevo.Operaciones = append(nuevo.Operaciones, OperacionLote{
		ID:            in.OperacionID,
		Fecha:         in.Fecha,
		Tipo:          tipo,
		Descripcion:   in.Descripcion,
		Lotes:         []Lote{lote},
		Entradas:      in.Unidades,
		Saldo:         nuevo.SaldoActual,
		CostoUnitario: in.CostoUnitario,
		CostoTotal:    costoTotal,
	})
	return nuevo
}

// reconstruirUEPS reproduce el historial completo desde cero, preservando
// los ids de operaciones y lotes.
func reconstruirUEPS(ops []OperacionLote) (EstadoUEPS, error) {
	e := EstadoUEPS{SaldoActual: decimal.Zero}
	var err error
	for _, op := range ops {
		switch op.Tipo {
		case SaldoInicial:
			e, err = e.AgregarSaldoInicial(entradaLoteDe(op))
		case Compra:
			e, err = e.AgregarCompra(entradaLoteDe(op))
		case Venta:
			e, err = e.AgregarVenta(EntradaVenta{
				OperacionID: op.ID, Fecha: op.Fecha, Descripcion: op.Descripcion, Unidades: op.Salidas,
			})
		case Devolucion:
			e, err = e.AgregarDevolucion(EntradaDevolucion{
				OperacionID: op.ID, Fecha: op.Fecha, Descripcion: op.Descripcion,
				LoteID: op.LoteObjetivoID, Unidades: op.Entradas,
			})
		case DevolucionCompra:
			e, err = e.AgregarDevolucionCompra(EntradaDevolucion{
				OperacionID: op.ID, Fecha: op.Fecha, Descripcion: op.Descripcion,
				LoteID: op.LoteObjetivoID, Unidades: op.Salidas,
			})
		default:
			err = domain.ErrEntradaInvalida
		}
		if err != nil {
			return EstadoUEPS{}, err
		}
	}
	return e, nil
}

func (e EstadoUEPS) clonar() EstadoUEPS {
	nuevo := e
	nuevo.Lotes = make([]Lote, len(e.Lotes))
	copy(nuevo.Lotes, e.Lotes)
	nuevo.Operaciones = make([]OperacionLote, len(e.Operaciones))
	copy(nuevo.Operaciones, e.Operaciones)
	return nuevo
}
