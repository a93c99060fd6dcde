package domain

import "errors"

// Errores de dominio (sin dependencias externas). Toda condición de negocio
// esperada se señala con uno de estos centinelas: el caso de uso devuelve el
// snapshot sin cambios y notifica; nunca se propaga como pánico.

// Validación: entradas que no cumplen las reglas del modelo.
var (
	ErrEntradaInvalida        = errors.New("entrada inválida")
	ErrTransaccionDescuadrada = errors.New("la transacción no está cuadrada: débitos y créditos difieren")
	ErrCostoUnitarioRequerido = errors.New("el costo unitario es obligatorio para esta operación")
	ErrUnidadesInvalidas      = errors.New("las unidades deben ser mayores que cero")
	ErrCostoInvalido          = errors.New("el costo unitario debe ser mayor que cero")
)

// Integridad referencial.
var (
	ErrCuentaConMovimientos = errors.New("la cuenta tiene movimientos asociados y no puede eliminarse")
)

// Estado: la operación es válida en forma pero no contra el snapshot actual.
var (
	ErrSaldoInicialDuplicado    = errors.New("ya existe un saldo inicial registrado")
	ErrSinSaldoInicial          = errors.New("debe registrar primero un saldo inicial")
	ErrStockInsuficiente        = errors.New("stock insuficiente para la salida solicitada")
	ErrDevolucionExcedida       = errors.New("la devolución excede las unidades disponibles para devolver")
	ErrSaldoInicialNoEliminable = errors.New("la operación de saldo inicial no puede eliminarse")
	ErrHistorialInconsistente   = errors.New("la modificación deja operaciones posteriores sin sustento")
)

// No encontrado.
var (
	ErrNoEncontrado           = errors.New("recurso no encontrado")
	ErrCuentaNoEncontrada     = errors.New("cuenta no encontrada")
	ErrTransaccionNoEncontrada = errors.New("transacción no encontrada")
	ErrOperacionNoEncontrada  = errors.New("operación no encontrada")
	ErrLoteNoEncontrado       = errors.New("lote no encontrado")
)

// Autenticación y autorización.
var (
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado   = errors.New("el email ya está registrado")
	ErrNoAutorizado        = errors.New("no autorizado")
	ErrAccesoDenegado      = errors.New("acceso denegado")
)

// EsValidacion reporta si err pertenece a la categoría de validación.
func EsValidacion(err error) bool {
	return errors.Is(err, ErrEntradaInvalida) ||
		errors.Is(err, ErrTransaccionDescuadrada) ||
		errors.Is(err, ErrCostoUnitarioRequerido) ||
		errors.Is(err, ErrUnidadesInvalidas) ||
		errors.Is(err, ErrCostoInvalido)
}

// EsEstado reporta si err es un conflicto con el estado actual del snapshot.
func EsEstado(err error) bool {
	return errors.Is(err, ErrSaldoInicialDuplicado) ||
		errors.Is(err, ErrSinSaldoInicial) ||
		errors.Is(err, ErrStockInsuficiente) ||
		errors.Is(err, ErrDevolucionExcedida) ||
		errors.Is(err, ErrSaldoInicialNoEliminable) ||
		errors.Is(err, ErrHistorialInconsistente)
}

// EsNoEncontrado reporta si err corresponde a un recurso inexistente.
func EsNoEncontrado(err error) bool {
	return errors.Is(err, ErrNoEncontrado) ||
		errors.Is(err, ErrCuentaNoEncontrada) ||
		errors.Is(err, ErrTransaccionNoEncontrada) ||
		errors.Is(err, ErrOperacionNoEncontrada) ||
		errors.Is(err, ErrLoteNoEncontrado) ||
		errors.Is(err, ErrUsuarioNoEncontrado)
}
