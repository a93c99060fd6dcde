package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// EstadoPEPS snapshot del kardex PEPS (primeras en entrar, primeras en
// salir). Los lotes se anexan al final de la lista, de modo que el orden
// cronológico coincide con el orden de consumo.
type EstadoPEPS struct {
	Lotes       []Lote          `json:"lotes"`
	Operaciones []OperacionLote `json:"operaciones"`
	SaldoActual decimal.Decimal `json:"saldoActual"`
}

// AgregarSaldoInicial registra el único saldo inicial admitido: crea el
// primer lote y fija el saldo monetario. Un segundo intento se rechaza con
// el estado sin cambios.
func (e EstadoPEPS) AgregarSaldoInicial(in EntradaLote) (EstadoPEPS, error) {
	if tieneSaldoInicial(e.Operaciones) {
		return e, domain.ErrSaldoInicialDuplicado
	}
	if err := in.validar(); err != nil {
		return e, err
	}
	return e.agregarLote(in, SaldoInicial), nil
}

// AgregarCompra anexa un lote nuevo al final de la lista. Exige que ya
// exista el saldo inicial.
func (e EstadoPEPS) AgregarCompra(in EntradaLote) (EstadoPEPS, error) {
	if !tieneSaldoInicial(e.Operaciones) {
		return e, domain.ErrSinSaldoInicial
	}
	if err := in.validar(); err != nil {
		return e, err
	}
	return e.agregarLote(in, Compra), nil
}

// AgregarVenta consume unidades recorriendo los lotes del más antiguo al
// más reciente y registra cada sub-lote consumido para auditoría. Se
// rechaza si las unidades superan el total restante de todos los lotes.
func (e EstadoPEPS) AgregarVenta(in EntradaVenta) (EstadoPEPS, error) {
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

// AgregarDevolucion devuelve unidades a un lote específico elegido por el
// caller. Solo puede devolverse lo vendido de ese lote menos lo ya
// devuelto; el lote recupera unidades restantes y el saldo sube al costo
// del lote.
func (e EstadoPEPS) AgregarDevolucion(in EntradaDevolucion) (EstadoPEPS, error) {
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

// EliminarOperacion quita una operación del historial y reconstruye lotes y
// saldos reproduciendo los insumos originales de las operaciones restantes.
// El saldo inicial nunca es eliminable; si la reproducción deja una
// operación posterior sin sustento, la eliminación completa se rechaza.
func (e EstadoPEPS) EliminarOperacion(id string) (EstadoPEPS, error) {
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

	nuevo, err := reconstruirPEPS(restantes)
	if err != nil {
		return e, domain.ErrHistorialInconsistente
	}
	return nuevo, nil
}

// EditarOperacion reemplaza los insumos editables de la operación según su
// tipo (unidades, costo, fecha, descripción; el tipo no cambia) y
// reconstruye todo el historial.
func (e EstadoPEPS) EditarOperacion(id string, ed EdicionLote) (EstadoPEPS, error) {
	ops, err := editarOperacionLote(e.Operaciones, id, ed)
	if err != nil {
		return e, err
	}
	nuevo, err := reconstruirPEPS(ops)
	if err != nil {
		return e, domain.ErrHistorialInconsistente
	}
	return nuevo, nil
}

// agregarLote crea el lote y su operación (saldo inicial o compra). El lote
// recién creado se guarda también como sub-lote de la operación, de modo
// que el historial conserve los insumos necesarios para reconstruirse.
func (e EstadoPEPS) agregarLote(in EntradaLote, tipo TipoOperacion) EstadoPEPS {
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
	nuevo.Lotes = append(nuevo.Lotes, lote)
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

// reconstruirPEPS reproduce el historial completo desde cero, preservando
// los ids de operaciones y lotes.
func reconstruirPEPS(ops []OperacionLote) (EstadoPEPS, error) {
	e := EstadoPEPS{SaldoActual: decimal.Zero}
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
		default:
			err = domain.ErrEntradaInvalida
		}
		if err != nil {
			return EstadoPEPS{}, err
		}
	}
	return e, nil
}

func (e EstadoPEPS) clonar() EstadoPEPS {
	nuevo := e
	nuevo.Lotes = make([]Lote, len(e.Lotes))
	copy(nuevo.Lotes, e.Lotes)
	nuevo.Operaciones = make([]OperacionLote, len(e.Operaciones))
	copy(nuevo.Operaciones, e.Operaciones)
	return nuevo
}
