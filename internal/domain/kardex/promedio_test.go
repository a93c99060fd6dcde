package kardex_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func costo(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func fecha(dia int) time.Time {
	return time.Date(2025, 3, dia, 0, 0, 0, 0, time.UTC)
}

func entradaPromedio(id string, dia int, tipo kardex.TipoOperacion, unidades int64, costoUnit *decimal.Decimal) kardex.EntradaPromedio {
	return kardex.EntradaPromedio{
		ID: id, Fecha: fecha(dia), Tipo: tipo, Unidades: dec(unidades), CostoUnitario: costoUnit,
	}
}

// Recorrido de referencia del promedio ponderado:
// saldo inicial 100@10 → stock 100, saldo 1000, promedio 10;
// compra 50@13 → stock 150, saldo 1650, promedio round(1650/150)=11;
// venta 80 → costo 80·11=880, stock 70, saldo 770, promedio round(770/70)=11.
func TestPromedio_RecorridoDeReferencia(t *testing.T) {
	e := kardex.EstadoPromedio{}

	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 100, costo(10)))
	require.NoError(t, err)
	assert.True(t, e.StockActual.Equal(dec(100)))
	assert.True(t, e.SaldoActual.Equal(dec(1000)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(10)))

	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Compra, 50, costo(13)))
	require.NoError(t, err)
	assert.True(t, e.StockActual.Equal(dec(150)))
	assert.True(t, e.SaldoActual.Equal(dec(1650)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(11)), "promedio = round(1650/150) = 11, fue %s", e.CostoPromedioActual)

	e, err = e.AgregarOperacion(entradaPromedio("op-3", 3, kardex.Venta, 80, nil))
	require.NoError(t, err)
	venta := e.Operaciones[2]
	assert.True(t, venta.CostoTotal.Equal(dec(880)), "la venta sale al promedio anterior: 80·11=880")
	assert.True(t, e.StockActual.Equal(dec(70)))
	assert.True(t, e.SaldoActual.Equal(dec(770)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(11)))
}

// La devolución conserva la semántica heredada de este motor: disminuye el
// stock con la misma aritmética de una venta, al promedio anterior. Este
// test fija esa decisión de compatibilidad.
func TestPromedio_DevolucionDisminuyeStock(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 100, costo(10)))
	require.NoError(t, err)

	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Devolucion, 30, nil))
	require.NoError(t, err)

	assert.True(t, e.StockActual.Equal(dec(70)), "la devolución resta stock en este motor")
	assert.True(t, e.SaldoActual.Equal(dec(700)))
	assert.True(t, e.Operaciones[1].CostoTotal.Equal(dec(300)), "costo al promedio anterior: 30·10")
}

// Toda cifra monetaria intermedia se redondea a la unidad de moneda.
func TestPromedio_RedondeoAgresivo(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 3, costo(10)))
	require.NoError(t, err)

	c := decimal.RequireFromString("10.40")
	e, err = e.AgregarOperacion(kardex.EntradaPromedio{
		ID: "op-2", Fecha: fecha(2), Tipo: kardex.Compra, Unidades: dec(3), CostoUnitario: &c,
	})
	require.NoError(t, err)

	// costoTotal = round(3·10.40) = 31; saldo = 30+31 = 61; promedio = round(61/6) = 10
	compra := e.Operaciones[1]
	assert.True(t, compra.CostoTotal.Equal(dec(31)), "costo total redondeado, fue %s", compra.CostoTotal)
	assert.True(t, e.SaldoActual.Equal(dec(61)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(10)))
}

func TestPromedio_VentaSinStockSeRechaza(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 10, costo(5)))
	require.NoError(t, err)

	resultado, err := e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Venta, 11, nil))
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, e, resultado)
}

func TestPromedio_CompraSinCostoSeRechaza(t *testing.T) {
	e := kardex.EstadoPromedio{}
	_, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.Compra, 10, nil))
	assert.ErrorIs(t, err, domain.ErrCostoUnitarioRequerido)
}

// Editar una operación histórica recalcula en cascada todas las filas
// posteriores a partir de sus insumos originales, preservando los ids.
func TestPromedio_EditarRecalculaEnCascada(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 100, costo(10)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Compra, 50, costo(13)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-3", 3, kardex.Venta, 80, nil))
	require.NoError(t, err)

	// La compra pasa de 50@13 a 50@16: saldo 1000+800=1800, promedio 12;
	// la venta de 80 se recalcula a 80·12=960; stock 70, saldo 840, promedio 12.
	e, err = e.EditarOperacion("op-2", entradaPromedio("op-2", 2, kardex.Compra, 50, costo(16)))
	require.NoError(t, err)

	require.Len(t, e.Operaciones, 3)
	assert.Equal(t, "op-3", e.Operaciones[2].ID, "los ids se preservan en la cascada")
	assert.True(t, e.Operaciones[1].Saldo.Equal(dec(1800)))
	assert.True(t, e.Operaciones[2].CostoTotal.Equal(dec(960)))
	assert.True(t, e.StockActual.Equal(dec(70)))
	assert.True(t, e.SaldoActual.Equal(dec(840)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(12)))
}

// Eliminar una operación histórica reproduce el resto del historial contra
// el prefijo correcto y sincroniza los campos resumen.
func TestPromedio_EliminarRecalculaEnCascada(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 100, costo(10)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Compra, 50, costo(13)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-3", 3, kardex.Venta, 80, nil))
	require.NoError(t, err)

	e, err = e.EliminarOperacion("op-2")
	require.NoError(t, err)

	// Sin la compra: venta de 80 sobre 100@10 → stock 20, saldo 200.
	require.Len(t, e.Operaciones, 2)
	assert.True(t, e.StockActual.Equal(dec(20)))
	assert.True(t, e.SaldoActual.Equal(dec(200)))
	assert.True(t, e.CostoPromedioActual.Equal(dec(10)))
}

// Si la mutación deja una venta posterior sin stock, toda la operación se
// rechaza y el snapshot no cambia.
func TestPromedio_EliminarQueInvalidaHistorialSeRechaza(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 10, costo(10)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Compra, 100, costo(10)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-3", 3, kardex.Venta, 90, nil))
	require.NoError(t, err)

	resultado, err := e.EliminarOperacion("op-2")
	assert.ErrorIs(t, err, domain.ErrHistorialInconsistente)
	assert.Equal(t, e, resultado)
}

func TestPromedio_SaldoInicialNoEliminable(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 10, costo(10)))
	require.NoError(t, err)

	resultado, err := e.EliminarOperacion("op-1")
	assert.ErrorIs(t, err, domain.ErrSaldoInicialNoEliminable)
	assert.Equal(t, e, resultado)
}

// La venta que agota el stock mantiene el promedio anterior (no divide por cero).
func TestPromedio_VentaQueAgotaStockMantienePromedio(t *testing.T) {
	e := kardex.EstadoPromedio{}
	e, err := e.AgregarOperacion(entradaPromedio("op-1", 1, kardex.SaldoInicial, 10, costo(7)))
	require.NoError(t, err)
	e, err = e.AgregarOperacion(entradaPromedio("op-2", 2, kardex.Venta, 10, nil))
	require.NoError(t, err)

	assert.True(t, e.StockActual.IsZero())
	assert.True(t, e.SaldoActual.IsZero())
	assert.True(t, e.CostoPromedioActual.Equal(dec(7)), "con stock cero se conserva el promedio previo")
}
