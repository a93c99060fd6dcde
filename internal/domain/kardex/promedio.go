package kardex

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// OperacionPromedio es un renglón del kardex por promedio ponderado. Cada
// registro es un snapshot derivado, no estado independiente: recalcularlo
// exige el registro inmediatamente anterior en orden cronológico. Los
// campos de insumo (Fecha, Tipo, Unidades, CostoUnitario, Descripcion) se
// conservan tal cual para poder reproducir la cascada.
type OperacionPromedio struct {
	ID            string           `json:"id"`
	Fecha         time.Time        `json:"fecha"`
	Tipo          TipoOperacion    `json:"tipo"`
	Descripcion   string           `json:"descripcion"`
	Unidades      decimal.Decimal  `json:"unidades"`
	CostoUnitario *decimal.Decimal `json:"costoUnitario,omitempty"`
	CostoTotal    decimal.Decimal  `json:"costoTotal"`
	CostoPromedio decimal.Decimal  `json:"costoPromedio"`
	Saldo         decimal.Decimal  `json:"saldo"`
	SaldoUnidades decimal.Decimal  `json:"saldoUnidades"`
}

// EntradaPromedio insumos de una operación del kardex promedio.
type EntradaPromedio struct {
	ID            string
	Fecha         time.Time
	Tipo          TipoOperacion
	Descripcion   string
	Unidades      decimal.Decimal
	CostoUnitario *decimal.Decimal
}

// EstadoPromedio snapshot del kardex por promedio ponderado. Los campos
// resumen replican siempre la última operación (o cero si no hay ninguna).
type EstadoPromedio struct {
	Operaciones         []OperacionPromedio `json:"operaciones"`
	CostoPromedioActual decimal.Decimal     `json:"costoPromedioActual"`
	StockActual         decimal.Decimal     `json:"stockActual"`
	SaldoActual         decimal.Decimal     `json:"saldoActual"`
}

// resumenPromedio estado acumulado contra el que se aplica el siguiente paso.
type resumenPromedio struct {
	stock    decimal.Decimal
	saldo    decimal.Decimal
	promedio decimal.Decimal
}

// AgregarOperacion aplica una operación contra la última fila del kardex y
// la anexa. El algoritmo no exige que SALDO_INICIAL sea único ni el primero;
// esa regla pertenece a los motores de lotes.
func (e EstadoPromedio) AgregarOperacion(in EntradaPromedio) (EstadoPromedio, error) {
	op, err := aplicarPromedio(e.resumen(), in)
	if err != nil {
		return e, err
	}
	nuevo := e.clonar()
	nuevo.Operaciones = append(nuevo.Operaciones, op)
	nuevo.actualizarResumen()
	return nuevo, nil
}

// EditarOperacion reemplaza los insumos de la operación indicada y
// recalcula en cascada todas las operaciones desde ese índice, preservando
// los ids. Si la reproducción deja una operación posterior sin sustento
// (por ejemplo una venta sin stock), la edición completa se rechaza.
func (e EstadoPromedio) EditarOperacion(id string, in EntradaPromedio) (EstadoPromedio, error) {
	idx := e.indice(id)
	if idx < 0 {
		return e, domain.ErrOperacionNoEncontrada
	}
	nuevo := e.clonar()
	op := &nuevo.Operaciones[idx]
	op.Fecha = in.Fecha
	op.Tipo = in.Tipo
	op.Descripcion = in.Descripcion
	op.Unidades = in.Unidades
	op.CostoUnitario = copiarCosto(in.CostoUnitario)
	if err := nuevo.recalcularDesde(idx); err != nil {
		return e, err
	}
	return nuevo, nil
}

// EliminarOperacion quita la operación y recalcula en cascada desde su
// índice. El saldo inicial nunca es eliminable.
func (e EstadoPromedio) EliminarOperacion(id string) (EstadoPromedio, error) {
	idx := e.indice(id)
	if idx < 0 {
		return e, domain.ErrOperacionNoEncontrada
	}
	if e.Operaciones[idx].Tipo == SaldoInicial {
		return e, domain.ErrSaldoInicialNoEliminable
	}
	nuevo := e.clonar()
	nuevo.Operaciones = append(nuevo.Operaciones[:idx], nuevo.Operaciones[idx+1:]...)
	if err := nuevo.recalcularDesde(idx); err != nil {
		return e, err
	}
	return nuevo, nil
}

// aplicarPromedio es la transición de un solo paso del kardex promedio.
// Toda cifra monetaria intermedia se redondea a la unidad de moneda después
// de cada paso; ver redondear.
func aplicarPromedio(prev resumenPromedio, in EntradaPromedio) (OperacionPromedio, error) {
	if in.ID == "" || !in.Tipo.Valido() || in.Tipo == DevolucionCompra {
		return OperacionPromedio{}, domain.ErrEntradaInvalida
	}
	if !in.Unidades.GreaterThan(decimal.Zero) {
		return OperacionPromedio{}, domain.ErrUnidadesInvalidas
	}

	op := OperacionPromedio{
		ID:            in.ID,
		Fecha:         in.Fecha,
		Tipo:          in.Tipo,
		Descripcion:   in.Descripcion,
		Unidades:      in.Unidades,
		CostoUnitario: copiarCosto(in.CostoUnitario),
	}

	switch in.Tipo {
	case SaldoInicial:
		// El saldo inicial parte de cero sin mirar la fila anterior; solo los
		// motores de lotes garantizan que además sea único y el primero.
		if in.CostoUnitario == nil {
			return OperacionPromedio{}, domain.ErrCostoUnitarioRequerido
		}
		if !in.CostoUnitario.GreaterThan(decimal.Zero) {
			return OperacionPromedio{}, domain.ErrCostoInvalido
		}
		op.CostoTotal = redondear(in.Unidades.Mul(*in.CostoUnitario))
		op.SaldoUnidades = in.Unidades
		op.Saldo = op.CostoTotal
		op.CostoPromedio = redondear(*in.CostoUnitario)

	case Compra:
		if in.CostoUnitario == nil {
			return OperacionPromedio{}, domain.ErrCostoUnitarioRequerido
		}
		if !in.CostoUnitario.GreaterThan(decimal.Zero) {
			return OperacionPromedio{}, domain.ErrCostoInvalido
		}
		op.CostoTotal = redondear(in.Unidades.Mul(*in.CostoUnitario))
		op.SaldoUnidades = prev.stock.Add(in.Unidades)
		op.Saldo = redondear(prev.saldo.Add(op.CostoTotal))
		if op.SaldoUnidades.GreaterThan(decimal.Zero) {
			op.CostoPromedio = redondear(op.Saldo.Div(op.SaldoUnidades))
		} else {
			op.CostoPromedio = prev.promedio
		}

	case Venta, Devolucion:
		// DEVOLUCION conserva la semántica heredada: disminuye stock con la
		// misma aritmética de una venta, al costo promedio anterior.
		if in.Unidades.GreaterThan(prev.stock) {
			return OperacionPromedio{}, domain.ErrStockInsuficiente
		}
		op.CostoTotal = redondear(in.Unidades.Mul(prev.promedio))
		op.SaldoUnidades = prev.stock.Sub(in.Unidades)
		op.Saldo = redondear(prev.saldo.Sub(op.CostoTotal))
		if op.SaldoUnidades.GreaterThan(decimal.Zero) {
			op.CostoPromedio = redondear(op.Saldo.Div(op.SaldoUnidades))
		} else {
			op.CostoPromedio = prev.promedio
		}

	default:
		return OperacionPromedio{}, domain.ErrEntradaInvalida
	}

	return op, nil
}

// recalcularDesde reproduce las operaciones desde el índice dado contra el
// prefijo ya correcto, usando los insumos originales de cada fila y
// preservando sus ids; al final sincroniza los campos resumen.
func (e *EstadoPromedio) recalcularDesde(desde int) error {
	prev := resumenPromedio{stock: decimal.Zero, saldo: decimal.Zero, promedio: decimal.Zero}
	if desde > 0 {
		anterior := e.Operaciones[desde-1]
		prev = resumenPromedio{stock: anterior.SaldoUnidades, saldo: anterior.Saldo, promedio: anterior.CostoPromedio}
	}
	for i := desde; i < len(e.Operaciones); i++ {
		original := e.Operaciones[i]
		op, err := aplicarPromedio(prev, EntradaPromedio{
			ID:            original.ID,
			Fecha:         original.Fecha,
			Tipo:          original.Tipo,
			Descripcion:   original.Descripcion,
			Unidades:      original.Unidades,
			CostoUnitario: original.CostoUnitario,
		})
		if err != nil {
			return domain.ErrHistorialInconsistente
		}
		e.Operaciones[i] = op
		prev = resumenPromedio{stock: op.SaldoUnidades, saldo: op.Saldo, promedio: op.CostoPromedio}
	}
	e.actualizarResumen()
	return nil
}

func (e EstadoPromedio) resumen() resumenPromedio {
	if len(e.Operaciones) == 0 {
		return resumenPromedio{stock: decimal.Zero, saldo: decimal.Zero, promedio: decimal.Zero}
	}
	ultima := e.Operaciones[len(e.Operaciones)-1]
	return resumenPromedio{stock: ultima.SaldoUnidades, saldo: ultima.Saldo, promedio: ultima.CostoPromedio}
}

func (e *EstadoPromedio) actualizarResumen() {
	r := e.resumen()
	e.StockActual = r.stock
	e.SaldoActual = r.saldo
	e.CostoPromedioActual = r.promedio
}

func (e EstadoPromedio) indice(id string) int {
	for i, op := range e.Operaciones {
		if op.ID == id {
			return i
		}
	}
	return -1
}

func (e EstadoPromedio) clonar() EstadoPromedio {
	nuevo := e
	nuevo.Operaciones = make([]OperacionPromedio, len(e.Operaciones))
	copy(nuevo.Operaciones, e.Operaciones)
	return nuevo
}

func copiarCosto(c *decimal.Decimal) *decimal.Decimal {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
