package kardex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

// pepsConDosLotes arma el escenario de referencia: lote A de 10@5 (saldo
// inicial) y lote B de 10@7 (compra).
func pepsConDosLotes(t *testing.T) kardex.EstadoPEPS {
	t.Helper()
	e := kardex.EstadoPEPS{}
	e, err := e.AgregarSaldoInicial(kardex.EntradaLote{
		OperacionID: "op-si", LoteID: "lote-a", Fecha: fecha(1), Nombre: "Lote A",
		Unidades: dec(10), CostoUnitario: dec(5),
	})
	require.NoError(t, err)
	e, err = e.AgregarCompra(kardex.EntradaLote{
		OperacionID: "op-c1", LoteID: "lote-b", Fecha: fecha(2), Nombre: "Lote B",
		Unidades: dec(10), CostoUnitario: dec(7),
	})
	require.NoError(t, err)
	return e
}

// Ordenamiento PEPS: con lotes A(10@5) y B(10@7), una venta de 15 consume
// 10 de A y 5 de B; costo total 10·5+5·7 = 85; A queda en 0 y B en 5.
func TestPEPS_VentaConsumeDelMasAntiguo(t *testing.T) {
	e := pepsConDosLotes(t)

	e, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v1", Fecha: fecha(3), Unidades: dec(15),
	})
	require.NoError(t, err)

	assert.True(t, e.Lotes[0].UnidadesRestantes.IsZero(), "el lote A se agota primero")
	assert.True(t, e.Lotes[1].UnidadesRestantes.Equal(dec(5)))

	venta := e.Operaciones[2]
	assert.True(t, venta.CostoTotal.Equal(dec(85)), "costo PEPS: 10·5 + 5·7 = 85, fue %s", venta.CostoTotal)
	require.Len(t, venta.Lotes, 2, "la venta registra los sub-lotes consumidos")
	assert.Equal(t, "lote-a", venta.Lotes[0].ID)
	assert.True(t, venta.Lotes[0].Unidades.Equal(dec(10)))
	assert.Equal(t, "lote-b", venta.Lotes[1].ID)
	assert.True(t, venta.Lotes[1].Unidades.Equal(dec(5)))

	// Saldo monetario: 50+70−85 = 35.
	assert.True(t, e.SaldoActual.Equal(dec(35)))
}

// Un segundo saldo inicial se rechaza con lotes y operaciones sin cambios.
func TestPEPS_SaldoInicialDuplicadoSeRechaza(t *testing.T) {
	e := pepsConDosLotes(t)

	resultado, err := e.AgregarSaldoInicial(kardex.EntradaLote{
		OperacionID: "op-si2", LoteID: "lote-x", Fecha: fecha(4), Nombre: "Otro",
		Unidades: dec(5), CostoUnitario: dec(9),
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInicialDuplicado)
	assert.Equal(t, e, resultado)
	assert.Len(t, resultado.Lotes, 2)
	assert.Len(t, resultado.Operaciones, 2)
}

func TestPEPS_CompraAntesDelSaldoInicialSeRechaza(t *testing.T) {
	e := kardex.EstadoPEPS{}
	_, err := e.AgregarCompra(kardex.EntradaLote{
		OperacionID: "op-c", LoteID: "lote-x", Fecha: fecha(1), Nombre: "X",
		Unidades: dec(5), CostoUnitario: dec(3),
	})
	assert.ErrorIs(t, err, domain.ErrSinSaldoInicial)
}

func TestPEPS_EntradasNoPositivasSeRechazan(t *testing.T) {
	e := kardex.EstadoPEPS{}
	_, err := e.AgregarSaldoInicial(kardex.EntradaLote{
		OperacionID: "op", LoteID: "l", Fecha: fecha(1), Unidades: dec(0), CostoUnitario: dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrUnidadesInvalidas)

	_, err = e.AgregarSaldoInicial(kardex.EntradaLote{
		OperacionID: "op", LoteID: "l", Fecha: fecha(1), Unidades: dec(5), CostoUnitario: dec(-1),
	})
	assert.ErrorIs(t, err, domain.ErrCostoInvalido)
}

func TestPEPS_VentaSobreElStockTotalSeRechaza(t *testing.T) {
	e := pepsConDosLotes(t)
	resultado, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v", Fecha: fecha(3), Unidades: dec(21),
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, e, resultado)
}

// La devolución apunta a un lote concreto: solo puede devolverse lo vendido
// de ese lote menos lo ya devuelto.
func TestPEPS_DevolucionPorLote(t *testing.T) {
	e := pepsConDosLotes(t)
	e, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v1", Fecha: fecha(3), Unidades: dec(15),
	})
	require.NoError(t, err)

	// Del lote B salieron 5; devolver 6 se rechaza.
	resultado, err := e.AgregarDevolucion(kardex.EntradaDevolucion{
		OperacionID: "op-d1", Fecha: fecha(4), LoteID: "lote-b", Unidades: dec(6),
	})
	assert.ErrorIs(t, err, domain.ErrDevolucionExcedida)
	assert.Equal(t, e, resultado)

	// Devolver 3 al lote B: restantes 5+3=8, saldo 35+3·7=56.
	e, err = e.AgregarDevolucion(kardex.EntradaDevolucion{
		OperacionID: "op-d1", Fecha: fecha(4), LoteID: "lote-b", Unidades: dec(3),
	})
	require.NoError(t, err)
	assert.True(t, e.Lotes[1].UnidadesRestantes.Equal(dec(8)))
	assert.True(t, e.SaldoActual.Equal(dec(56)))

	// Ya solo quedan 2 por devolver al lote B.
	_, err = e.AgregarDevolucion(kardex.EntradaDevolucion{
		OperacionID: "op-d2", Fecha: fecha(5), LoteID: "lote-b", Unidades: dec(3),
	})
	assert.ErrorIs(t, err, domain.ErrDevolucionExcedida)
}

func TestPEPS_DevolucionALoteInexistente(t *testing.T) {
	e := pepsConDosLotes(t)
	_, err := e.AgregarDevolucion(kardex.EntradaDevolucion{
		OperacionID: "op-d", Fecha: fecha(3), LoteID: "lote-z", Unidades: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrLoteNoEncontrado)
}

// Eliminar una venta reconstruye los lotes reproduciendo el historial: las
// unidades consumidas vuelven a estar disponibles.
func TestPEPS_EliminarVentaReconstruyeLotes(t *testing.T) {
	e := pepsConDosLotes(t)
	e, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v1", Fecha: fecha(3), Unidades: dec(15),
	})
	require.NoError(t, err)

	e, err = e.EliminarOperacion("op-v1")
	require.NoError(t, err)

	assert.True(t, e.Lotes[0].UnidadesRestantes.Equal(dec(10)), "el lote A recupera sus unidades")
	assert.True(t, e.Lotes[1].UnidadesRestantes.Equal(dec(10)))
	assert.True(t, e.SaldoActual.Equal(dec(120)), "saldo reconstruido: 50+70")
	assert.Len(t, e.Operaciones, 2)
}

func TestPEPS_SaldoInicialNoEliminable(t *testing.T) {
	e := pepsConDosLotes(t)
	resultado, err := e.EliminarOperacion("op-si")
	assert.ErrorIs(t, err, domain.ErrSaldoInicialNoEliminable)
	assert.Equal(t, e, resultado)
}

// Eliminar una compra de la que ya se vendió deja la venta sin sustento:
// la reproducción falla y el snapshot no cambia.
func TestPEPS_EliminarCompraConsumidaSeRechaza(t *testing.T) {
	e := pepsConDosLotes(t)
	e, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v1", Fecha: fecha(3), Unidades: dec(15),
	})
	require.NoError(t, err)

	resultado, err := e.EliminarOperacion("op-c1")
	assert.ErrorIs(t, err, domain.ErrHistorialInconsistente)
	assert.Equal(t, e, resultado)
}

// Editar las unidades de una compra recalcula los lotes y las ventas
// posteriores con los mismos ids.
func TestPEPS_EditarCompraReconstruye(t *testing.T) {
	e := pepsConDosLotes(t)
	e, err := e.AgregarVenta(kardex.EntradaVenta{
		OperacionID: "op-v1", Fecha: fecha(3), Unidades: dec(15),
	})
	require.NoError(t, err)

	// El lote B pasa de 10@7 a 20@7: la venta de 15 sigue tomando 10 de A y
	// 5 de B, pero B queda con 15 restantes.
	e, err = e.EditarOperacion("op-c1", kardex.EdicionLote{
		Fecha: fecha(2), Unidades: dec(20),
	})
	require.NoError(t, err)

	require.Len(t, e.Lotes, 2)
	assert.Equal(t, "lote-b", e.Lotes[1].ID, "el id del lote se preserva")
	assert.True(t, e.Lotes[1].Unidades.Equal(dec(20)))
	assert.True(t, e.Lotes[1].UnidadesRestantes.Equal(dec(15)))
	assert.True(t, e.SaldoActual.Equal(dec(105)), "50+140−85")
}
