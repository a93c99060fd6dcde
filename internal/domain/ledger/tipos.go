package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// TipoCuenta clasifica una cuenta dentro de la ecuación contable.
// Es un tipo cerrado: cualquier valor fuera de las constantes es rechazado
// por Valido(), y los switch sobre él llevan siempre rama default.
type TipoCuenta string

const (
	TipoActivo  TipoCuenta = "activo"
	TipoPasivo  TipoCuenta = "pasivo"
	TipoCapital TipoCuenta = "capital"
	TipoIngreso TipoCuenta = "ingreso"
	TipoGasto   TipoCuenta = "gasto"
)

// Valido reporta si el tipo es uno de los cinco admitidos.
func (t TipoCuenta) Valido() bool {
	switch t {
	case TipoActivo, TipoPasivo, TipoCapital, TipoIngreso, TipoGasto:
		return true
	default:
		return false
	}
}

// Naturaleza indica si el saldo de la cuenta aumenta con débitos (deudora)
// o con créditos (acreedora). Determina el signo de la propagación de saldos.
type Naturaleza string

const (
	NaturalezaDeudora   Naturaleza = "deudora"
	NaturalezaAcreedora Naturaleza = "acreedora"
)

// Valida reporta si la naturaleza es deudora o acreedora.
func (n Naturaleza) Valida() bool {
	switch n {
	case NaturalezaDeudora, NaturalezaAcreedora:
		return true
	default:
		return false
	}
}

// Cuenta es una cuenta contable. Saldo siempre es la suma con signo,
// ajustada por naturaleza, de las partidas de todas las transacciones
// que la referencian; nunca se asigna de forma directa.
type Cuenta struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Codigo       string          `json:"codigo"`
	Tipo         TipoCuenta      `json:"tipo"`
	Naturaleza   Naturaleza      `json:"naturaleza"`
	Saldo        decimal.Decimal `json:"saldo"`
	Subcategoria string          `json:"subcategoria,omitempty"`
}

// Partida es una línea de una transacción: débito o crédito contra una cuenta.
// La validación es a nivel de transacción (suma de débitos == suma de créditos);
// el modelo no exige exclusividad debe/haber por partida.
type Partida struct {
	ID       string          `json:"id"`
	CuentaID string          `json:"cuentaId"`
	Debe     decimal.Decimal `json:"debe"`
	Haber    decimal.Decimal `json:"haber"`
}

// Transaccion es un asiento de diario. Invariante: |Σdebe − Σhaber| < 0.001;
// una transacción que lo viole jamás se persiste.
type Transaccion struct {
	ID          string    `json:"id"`
	Fecha       time.Time `json:"fecha"`
	Descripcion string    `json:"descripcion"`
	Partidas    []Partida `json:"partidas"`
	Cuadrada    bool      `json:"cuadrada"`
}

// TotalDebe suma los débitos de todas las partidas.
func (t Transaccion) TotalDebe() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Partidas {
		total = total.Add(p.Debe)
	}
	return total
}

// TotalHaber suma los créditos de todas las partidas.
func (t Transaccion) TotalHaber() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Partidas {
		total = total.Add(p.Haber)
	}
	return total
}

// NuevaCuenta datos para crear una cuenta (el saldo nace en cero).
type NuevaCuenta struct {
	ID           string
	Nombre       string
	Codigo       string
	Tipo         TipoCuenta
	Naturaleza   Naturaleza
	Subcategoria string
}

// NuevaPartida línea de una transacción por registrar.
type NuevaPartida struct {
	ID       string
	CuentaID string
	Debe     decimal.Decimal
	Haber    decimal.Decimal
}

// NuevaTransaccion datos para registrar un asiento.
type NuevaTransaccion struct {
	ID          string
	Fecha       time.Time
	Descripcion string
	Partidas    []NuevaPartida
}

func (n NuevaCuenta) validar() error {
	if n.ID == "" || n.Nombre == "" {
		return domain.ErrEntradaInvalida
	}
	if !n.Tipo.Valido() || !n.Naturaleza.Valida() {
		return domain.ErrEntradaInvalida
	}
	return nil
}
