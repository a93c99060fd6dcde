// Package ledger implementa el libro contable de partida doble como una
// máquina de transiciones puras: cada operación recibe el snapshot actual y
// devuelve uno nuevo, o el mismo snapshot sin cambios junto con un error de
// dominio cuando la operación se rechaza. El paquete no hace I/O ni retiene
// referencias entre llamadas; la capa de aplicación decide dónde persistir
// el snapshot y cómo notificar el resultado.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/pkg/textnorm"
)

// epsilon tolerancia para el cuadre de una transacción: |Σdebe − Σhaber| < 0.001.
var epsilon = decimal.NewFromFloat(0.001)

// EstadoLibro es el snapshot completo del libro contable de un perfil.
type EstadoLibro struct {
	Cuentas        []Cuenta      `json:"cuentas"`
	Transacciones  []Transaccion `json:"transacciones"`
	CuentaActivaID string        `json:"cuentaActivaId,omitempty"`
	FiltroTipo     TipoCuenta    `json:"filtroTipo,omitempty"`
}

// AgregarCuenta añade una cuenta con saldo cero.
func (e EstadoLibro) AgregarCuenta(in NuevaCuenta) (EstadoLibro, error) {
	if err := in.validar(); err != nil {
		return e, err
	}
	cuenta := Cuenta{
		ID:           in.ID,
		Nombre:       in.Nombre,
		Codigo:       in.Codigo,
		Tipo:         in.Tipo,
		Naturaleza:   in.Naturaleza,
		Saldo:        decimal.Zero,
		Subcategoria: in.Subcategoria,
	}
	nuevo := e.clonar()
	nuevo.Cuentas = append(nuevo.Cuentas, cuenta)
	return nuevo, nil
}

// ActualizarCuenta reemplaza los campos descriptivos de una cuenta por id.
// El saldo nunca se toca por esta vía: solo las transacciones lo mueven.
// Si la cuenta es la selección activa, la selección se mantiene por id.
func (e EstadoLibro) ActualizarCuenta(c Cuenta) (EstadoLibro, error) {
	if c.Nombre == "" || !c.Tipo.Valido() || !c.Naturaleza.Valida() {
		return e, domain.ErrEntradaInvalida
	}
	idx := e.indiceCuenta(c.ID)
	if idx < 0 {
		return e, domain.ErrCuentaNoEncontrada
	}
	nuevo := e.clonar()
	actual := &nuevo.Cuentas[idx]
	actual.Nombre = c.Nombre
	actual.Codigo = c.Codigo
	actual.Tipo = c.Tipo
	actual.Naturaleza = c.Naturaleza
	actual.Subcategoria = c.Subcategoria
	return nuevo, nil
}

// EliminarCuenta quita una cuenta siempre que ninguna partida la referencie.
func (e EstadoLibro) EliminarCuenta(id string) (EstadoLibro, error) {
	idx := e.indiceCuenta(id)
	if idx < 0 {
		return e, domain.ErrCuentaNoEncontrada
	}
	for _, tx := range e.Transacciones {
		for _, p := range tx.Partidas {
			if p.CuentaID == id {
				return e, domain.ErrCuentaConMovimientos
			}
		}
	}
	nuevo := e.clonar()
	nuevo.Cuentas = append(nuevo.Cuentas[:idx], nuevo.Cuentas[idx+1:]...)
	if nuevo.CuentaActivaID == id {
		nuevo.CuentaActivaID = ""
	}
	return nuevo, nil
}

// SeleccionarCuenta fija la cuenta activa (estado de vista, sin invariantes).
func (e EstadoLibro) SeleccionarCuenta(id string) (EstadoLibro, error) {
	if id != "" && e.indiceCuenta(id) < 0 {
		return e, domain.ErrCuentaNoEncontrada
	}
	nuevo := e.clonar()
	nuevo.CuentaActivaID = id
	return nuevo, nil
}

// AgregarTransaccion registra un asiento: verifica el cuadre dentro de
// epsilon, que toda cuenta referenciada exista y que debe/haber no sean
// negativos; luego propaga el delta a cada cuenta según su naturaleza.
func (e EstadoLibro) AgregarTransaccion(in NuevaTransaccion) (EstadoLibro, error) {
	if in.ID == "" || len(in.Partidas) == 0 {
		return e, domain.ErrEntradaInvalida
	}
	tx := Transaccion{
		ID:          in.ID,
		Fecha:       in.Fecha,
		Descripcion: in.Descripcion,
		Partidas:    make([]Partida, 0, len(in.Partidas)),
	}
	for _, p := range in.Partidas {
		if p.ID == "" || p.Debe.IsNegative() || p.Haber.IsNegative() {
			return e, domain.ErrEntradaInvalida
		}
		if e.indiceCuenta(p.CuentaID) < 0 {
			return e, domain.ErrCuentaNoEncontrada
		}
		tx.Partidas = append(tx.Partidas, Partida{ID: p.ID, CuentaID: p.CuentaID, Debe: p.Debe, Haber: p.Haber})
	}

	diferencia := tx.TotalDebe().Sub(tx.TotalHaber()).Abs()
	if diferencia.GreaterThanOrEqual(epsilon) {
		return e, domain.ErrTransaccionDescuadrada
	}
	tx.Cuadrada = true

	nuevo := e.clonar()
	nuevo.aplicarDeltas(tx, false)
	nuevo.Transacciones = append(nuevo.Transacciones, tx)
	return nuevo, nil
}

// EliminarTransaccion aplica la negación exacta de la fórmula de registro y
// quita la transacción: registrar y eliminar deben dejar todo saldo igual
// a su valor previo.
func (e EstadoLibro) EliminarTransaccion(id string) (EstadoLibro, error) {
	idx := -1
	for i, tx := range e.Transacciones {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e, domain.ErrTransaccionNoEncontrada
	}
	nuevo := e.clonar()
	nuevo.aplicarDeltas(nuevo.Transacciones[idx], true)
	nuevo.Transacciones = append(nuevo.Transacciones[:idx], nuevo.Transacciones[idx+1:]...)
	return nuevo, nil
}

// EliminarTodasLasTransacciones vacía el diario y deja todo saldo en cero.
// Es el inverso en bloque, no un pliegue de eliminaciones individuales.
func (e EstadoLibro) EliminarTodasLasTransacciones() EstadoLibro {
	nuevo := e.clonar()
	for i := range nuevo.Cuentas {
		nuevo.Cuentas[i].Saldo = decimal.Zero
	}
	nuevo.Transacciones = nil
	return nuevo
}

// FiltrarCuentas fija el filtro por tipo ("" = todas). Estado de vista.
func (e EstadoLibro) FiltrarCuentas(tipo TipoCuenta) (EstadoLibro, error) {
	if tipo != "" && !tipo.Valido() {
		return e, domain.ErrEntradaInvalida
	}
	nuevo := e.clonar()
	nuevo.FiltroTipo = tipo
	return nuevo, nil
}

// CuentasVisibles devuelve las cuentas según el filtro de tipo vigente y un
// texto de búsqueda opcional sobre nombre o código, insensible a mayúsculas
// y acentos.
func (e EstadoLibro) CuentasVisibles(buscar string) []Cuenta {
	folded := textnorm.Plegar(buscar)
	var out []Cuenta
	for _, c := range e.Cuentas {
		if e.FiltroTipo != "" && c.Tipo != e.FiltroTipo {
			continue
		}
		if folded != "" &&
			!strings.Contains(textnorm.Plegar(c.Nombre), folded) &&
			!strings.Contains(textnorm.Plegar(c.Codigo), folded) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Ecuacion totales por tipo de cuenta y verificación activos = pasivos + capital.
type Ecuacion struct {
	Activos  decimal.Decimal `json:"activos"`
	Pasivos  decimal.Decimal `json:"pasivos"`
	Capital  decimal.Decimal `json:"capital"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
	Cuadra   bool            `json:"cuadra"`
}

// EcuacionContable suma los saldos por tipo y evalúa la ecuación contable.
func (e EstadoLibro) EcuacionContable() Ecuacion {
	var ec Ecuacion
	ec.Activos, ec.Pasivos, ec.Capital = decimal.Zero, decimal.Zero, decimal.Zero
	ec.Ingresos, ec.Gastos = decimal.Zero, decimal.Zero
	for _, c := range e.Cuentas {
		switch c.Tipo {
		case TipoActivo:
			ec.Activos = ec.Activos.Add(c.Saldo)
		case TipoPasivo:
			ec.Pasivos = ec.Pasivos.Add(c.Saldo)
		case TipoCapital:
			ec.Capital = ec.Capital.Add(c.Saldo)
		case TipoIngreso:
			ec.Ingresos = ec.Ingresos.Add(c.Saldo)
		case TipoGasto:
			ec.Gastos = ec.Gastos.Add(c.Saldo)
		default:
			// tipos inválidos no entran al estado; ver NuevaCuenta.validar
		}
	}
	ec.Cuadra = ec.Activos.Sub(ec.Pasivos.Add(ec.Capital)).Abs().LessThan(epsilon)
	return ec
}

// aplicarDeltas suma (o resta, si revertir) a cada cuenta afectada el cambio
// de saldo de la transacción: Σ(debe−haber) en cuentas deudoras y
// Σ(haber−debe) en acreedoras.
func (e *EstadoLibro) aplicarDeltas(tx Transaccion, revertir bool) {
	porCuenta := map[string]decimal.Decimal{}
	for _, p := range tx.Partidas {
		porCuenta[p.CuentaID] = porCuenta[p.CuentaID].Add(p.Debe.Sub(p.Haber))
	}
	for i := range e.Cuentas {
		delta, ok := porCuenta[e.Cuentas[i].ID]
		if !ok {
			continue
		}
		if e.Cuentas[i].Naturaleza == NaturalezaAcreedora {
			delta = delta.Neg()
		}
		if revertir {
			delta = delta.Neg()
		}
		e.Cuentas[i].Saldo = e.Cuentas[i].Saldo.Add(delta)
	}
}

// BuscarCuenta devuelve la cuenta por id, si existe.
func (e EstadoLibro) BuscarCuenta(id string) (Cuenta, bool) {
	idx := e.indiceCuenta(id)
	if idx < 0 {
		return Cuenta{}, false
	}
	return e.Cuentas[idx], true
}

func (e EstadoLibro) indiceCuenta(id string) int {
	for i, c := range e.Cuentas {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// clonar copia el snapshot (cuentas y transacciones en slices nuevos) para
// que las transiciones nunca muten el estado que recibió el caller.
func (e EstadoLibro) clonar() EstadoLibro {
	nuevo := e
	nuevo.Cuentas = make([]Cuenta, len(e.Cuentas))
	copy(nuevo.Cuentas, e.Cuentas)
	nuevo.Transacciones = make([]Transaccion, len(e.Transacciones))
	copy(nuevo.Transacciones, e.Transacciones)
	return nuevo
}
