package inventario_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventario"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: map[string][]byte{}}
}

func (m *memSnapshots) key(perfilID, clase string) string { return perfilID + "/" + clase }

func (m *memSnapshots) Get(_ context.Context, perfilID, clase string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[m.key(perfilID, clase)]
	if !ok {
		return nil, domain.ErrNoEncontrado
	}
	return data, nil
}

func (m *memSnapshots) Set(_ context.Context, perfilID, clase string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key(perfilID, clase)] = data
	return nil
}

func (m *memSnapshots) ListClases(_ context.Context, perfilID, prefijo string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var clases []string
	pre := m.key(perfilID, prefijo)
	for k := range m.data {
		if len(k) >= len(pre) && k[:len(pre)] == pre {
			clases = append(clases, k[len(perfilID)+1:])
		}
	}
	return clases, nil
}

type recNotifier struct {
	mu       sync.Mutex
	recibido []ports.Notification
}

func (n *recNotifier) Notify(_ context.Context, notif ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recibido = append(n.recibido, notif)
}

func (n *recNotifier) ultima() ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.recibido) == 0 {
		return ports.Notification{}
	}
	return n.recibido[len(n.recibido)-1]
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const perfil = "perfil-test"

func setup() (*inventario.UseCase, *recNotifier) {
	notifier := &recNotifier{}
	return inventario.NewUseCase(newMemSnapshots(), notifier), notifier
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func costoPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

func TestPromedio_FlujoCompleto(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "SALDO_INICIAL", Unidades: dec("100"), CostoUnitario: costoPtr("10"),
	})
	require.NoError(t, err)

	_, err = uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "COMPRA", Unidades: dec("50"), CostoUnitario: costoPtr("13"),
	})
	require.NoError(t, err)

	op, err := uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "VENTA", Unidades: dec("80"),
	})
	require.NoError(t, err)
	assert.True(t, op.CostoTotal.Equal(dec("880")), "venta de 80 al promedio 11")

	estado, err := uc.Promedio(ctx, perfil, "")
	require.NoError(t, err)
	assert.True(t, estado.StockActual.Equal(dec("70")))
	assert.True(t, estado.SaldoActual.Equal(dec("770")))
	assert.True(t, estado.CostoPromedioActual.Equal(dec("11")))
}

func TestPromedio_RechazoNoTocaElSnapshot(t *testing.T) {
	uc, notifier := setup()
	ctx := context.Background()

	_, err := uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "SALDO_INICIAL", Unidades: dec("10"), CostoUnitario: costoPtr("5"),
	})
	require.NoError(t, err)

	_, err = uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "VENTA", Unidades: dec("50"),
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, ports.SeveridadAdvertencia, notifier.ultima().Severidad)

	estado, err := uc.Promedio(ctx, perfil, "")
	require.NoError(t, err)
	require.Len(t, estado.Operaciones, 1, "la venta rechazada no debe persistirse")
	assert.True(t, estado.StockActual.Equal(dec("10")))
}

func TestPromedio_EditarRecalculaEnCascada(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "SALDO_INICIAL", Unidades: dec("100"), CostoUnitario: costoPtr("10"),
	})
	require.NoError(t, err)
	compra, err := uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "COMPRA", Unidades: dec("50"), CostoUnitario: costoPtr("13"),
	})
	require.NoError(t, err)
	_, err = uc.AgregarPromedio(ctx, perfil, "", dto.OperacionPromedioRequest{
		Tipo: "VENTA", Unidades: dec("80"),
	})
	require.NoError(t, err)

	estado, err := uc.EditarPromedio(ctx, perfil, "", compra.ID, dto.OperacionPromedioRequest{
		Tipo: "COMPRA", Unidades: dec("50"), CostoUnitario: costoPtr("16"),
	})
	require.NoError(t, err)
	assert.True(t, estado.CostoPromedioActual.Equal(dec("12")),
		"promedio recalculado con la compra a 16")
	assert.Equal(t, compra.ID, estado.Operaciones[1].ID, "la edición preserva el id")
}

func TestPromedio_InstanciasIndependientes(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.AgregarPromedio(ctx, perfil, "bodega-a", dto.OperacionPromedioRequest{
		Tipo: "SALDO_INICIAL", Unidades: dec("10"), CostoUnitario: costoPtr("5"),
	})
	require.NoError(t, err)
	_, err = uc.AgregarPromedio(ctx, perfil, "bodega-b", dto.OperacionPromedioRequest{
		Tipo: "SALDO_INICIAL", Unidades: dec("99"), CostoUnitario: costoPtr("7"),
	})
	require.NoError(t, err)

	a, err := uc.Promedio(ctx, perfil, "bodega-a")
	require.NoError(t, err)
	b, err := uc.Promedio(ctx, perfil, "bodega-b")
	require.NoError(t, err)
	assert.True(t, a.StockActual.Equal(dec("10")))
	assert.True(t, b.StockActual.Equal(dec("99")))

	instancias, err := uc.Instancias(ctx, perfil, "promedio")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bodega-a", "bodega-b"}, instancias)
}

// ──────────────────────────────────────────────────────────────────────────────
// PEPS / UEPS
// ──────────────────────────────────────────────────────────────────────────────

func TestPEPS_VentaConsumeDelLoteMasAntiguo(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.SaldoInicialPEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote A", Unidades: dec("10"), CostoUnitario: dec("5"),
	})
	require.NoError(t, err)
	_, err = uc.CompraPEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote B", Unidades: dec("10"), CostoUnitario: dec("7"),
	})
	require.NoError(t, err)

	estado, err := uc.VentaPEPS(ctx, perfil, "", dto.VentaRequest{Unidades: dec("15")})
	require.NoError(t, err)

	venta := estado.Operaciones[len(estado.Operaciones)-1]
	assert.True(t, venta.CostoTotal.Equal(dec("85")), "10@5 + 5@7")
	assert.True(t, estado.Lotes[0].UnidadesRestantes.IsZero(), "el lote más antiguo se agota primero")
	assert.True(t, estado.Lotes[1].UnidadesRestantes.Equal(dec("5")))
}

func TestPEPS_CompraAntesDelSaldoInicialRechazada(t *testing.T) {
	uc, notifier := setup()
	ctx := context.Background()

	_, err := uc.CompraPEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote A", Unidades: dec("10"), CostoUnitario: dec("5"),
	})
	require.ErrorIs(t, err, domain.ErrSinSaldoInicial)
	assert.Equal(t, ports.SeveridadAdvertencia, notifier.ultima().Severidad)
}

func TestUEPS_VentaConsumeDelLoteMasReciente(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.SaldoInicialUEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote A", Unidades: dec("10"), CostoUnitario: dec("5"),
	})
	require.NoError(t, err)
	_, err = uc.CompraUEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote B", Unidades: dec("10"), CostoUnitario: dec("7"),
	})
	require.NoError(t, err)

	estado, err := uc.VentaUEPS(ctx, perfil, "", dto.VentaRequest{Unidades: dec("15")})
	require.NoError(t, err)

	venta := estado.Operaciones[len(estado.Operaciones)-1]
	assert.True(t, venta.CostoTotal.Equal(dec("95")), "10@7 + 5@5")
}

func TestUEPS_DevolucionCompraBajaElLote(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	estado, err := uc.SaldoInicialUEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote A", Unidades: dec("10"), CostoUnitario: dec("5"),
	})
	require.NoError(t, err)
	loteID := estado.Lotes[0].ID

	estado, err = uc.DevolucionCompraUEPS(ctx, perfil, "", dto.DevolucionRequest{
		LoteID: loteID, Unidades: dec("4"),
	})
	require.NoError(t, err)
	assert.True(t, estado.Lotes[0].UnidadesRestantes.Equal(dec("6")))
	assert.True(t, estado.SaldoActual.Equal(dec("30")))
}

func TestEliminarSaldoInicial_Rechazado(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	estado, err := uc.SaldoInicialPEPS(ctx, perfil, "", dto.EntradaLoteRequest{
		Nombre: "Lote A", Unidades: dec("10"), CostoUnitario: dec("5"),
	})
	require.NoError(t, err)

	_, err = uc.EliminarPEPS(ctx, perfil, "", estado.Operaciones[0].ID)
	assert.ErrorIs(t, err, domain.ErrSaldoInicialNoEliminable)
}

func TestMetodoDesconocido_Rechazado(t *testing.T) {
	uc, _ := setup()
	_, err := uc.Instancias(context.Background(), perfil, "lifo")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
