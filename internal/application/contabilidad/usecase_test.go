package contabilidad_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/contabilidad"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: repositorio en memoria y notificador que graba
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
	for k := range m.data {
		pre := perfilID + "/" + prefijo
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

func setup() (*contabilidad.UseCase, *memSnapshots, *recNotifier) {
	repo := newMemSnapshots()
	notifier := &recNotifier{}
	return contabilidad.NewUseCase(repo, notifier), repo, notifier
}

func crearCaja(t *testing.T, uc *contabilidad.UseCase) string {
	t.Helper()
	cuenta, err := uc.CrearCuenta(context.Background(), perfil, dto.CuentaRequest{
		Nombre: "Caja", Codigo: "1105", Tipo: "activo", Naturaleza: "deudora",
	})
	require.NoError(t, err)
	return cuenta.ID
}

func crearCapital(t *testing.T, uc *contabilidad.UseCase) string {
	t.Helper()
	cuenta, err := uc.CrearCuenta(context.Background(), perfil, dto.CuentaRequest{
		Nombre: "Capital Social", Codigo: "3105", Tipo: "capital", Naturaleza: "acreedora",
	})
	require.NoError(t, err)
	return cuenta.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearCuenta_PersisteYNotifica(t *testing.T) {
	uc, repo, notifier := setup()
	ctx := context.Background()

	id := crearCaja(t, uc)

	estado, err := uc.Libro(ctx, perfil)
	require.NoError(t, err)
	require.Len(t, estado.Cuentas, 1)
	assert.Equal(t, id, estado.Cuentas[0].ID)
	assert.True(t, estado.Cuentas[0].Saldo.IsZero(), "una cuenta nueva nace con saldo cero")

	_, err = repo.Get(ctx, perfil, contabilidad.ClaseContabilidad)
	assert.NoError(t, err, "el snapshot debe quedar persistido")
	assert.Equal(t, ports.SeveridadExito, notifier.ultima().Severidad)
}

func TestRegistrarTransaccion_ActualizaSaldos(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()
	caja := crearCaja(t, uc)
	capital := crearCapital(t, uc)

	tx, err := uc.RegistrarTransaccion(ctx, perfil, dto.TransaccionRequest{
		Fecha:       "2024-03-01",
		Descripcion: "Aporte inicial",
		Partidas: []dto.PartidaRequest{
			{CuentaID: caja, Debe: decimal.NewFromInt(1000)},
			{CuentaID: capital, Haber: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)
	assert.True(t, tx.Cuadrada)

	estado, err := uc.Libro(ctx, perfil)
	require.NoError(t, err)
	cuentaCaja, ok := estado.BuscarCuenta(caja)
	require.True(t, ok)
	assert.True(t, cuentaCaja.Saldo.Equal(decimal.NewFromInt(1000)))

	ecuacion, err := uc.Ecuacion(ctx, perfil)
	require.NoError(t, err)
	assert.True(t, ecuacion.Cuadra)
}

func TestRegistrarTransaccion_DescuadradaNoTocaElSnapshot(t *testing.T) {
	uc, _, notifier := setup()
	ctx := context.Background()
	caja := crearCaja(t, uc)
	capital := crearCapital(t, uc)

	_, err := uc.RegistrarTransaccion(ctx, perfil, dto.TransaccionRequest{
		Descripcion: "Asiento descuadrado",
		Partidas: []dto.PartidaRequest{
			{CuentaID: caja, Debe: decimal.NewFromInt(500)},
			{CuentaID: capital, Haber: decimal.NewFromInt(300)},
		},
	})
	require.ErrorIs(t, err, domain.ErrTransaccionDescuadrada)
	assert.Equal(t, ports.SeveridadAdvertencia, notifier.ultima().Severidad,
		"el rechazo debe notificarse como advertencia")

	estado, err := uc.Libro(ctx, perfil)
	require.NoError(t, err)
	assert.Empty(t, estado.Transacciones, "el snapshot persistido no debe cambiar")
	cuentaCaja, _ := estado.BuscarCuenta(caja)
	assert.True(t, cuentaCaja.Saldo.IsZero())
}

func TestEliminarTransaccion_RevierteSaldos(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()
	caja := crearCaja(t, uc)
	capital := crearCapital(t, uc)

	tx, err := uc.RegistrarTransaccion(ctx, perfil, dto.TransaccionRequest{
		Descripcion: "Aporte",
		Partidas: []dto.PartidaRequest{
			{CuentaID: caja, Debe: decimal.NewFromInt(800)},
			{CuentaID: capital, Haber: decimal.NewFromInt(800)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.EliminarTransaccion(ctx, perfil, tx.ID))

	estado, err := uc.Libro(ctx, perfil)
	require.NoError(t, err)
	assert.Empty(t, estado.Transacciones)
	for _, c := range estado.Cuentas {
		assert.True(t, c.Saldo.IsZero(), "cuenta %s debe volver a cero", c.Nombre)
	}
}

func TestEliminarCuenta_ConMovimientosRechazada(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()
	caja := crearCaja(t, uc)
	capital := crearCapital(t, uc)

	_, err := uc.RegistrarTransaccion(ctx, perfil, dto.TransaccionRequest{
		Descripcion: "Aporte",
		Partidas: []dto.PartidaRequest{
			{CuentaID: caja, Debe: decimal.NewFromInt(100)},
			{CuentaID: capital, Haber: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	err = uc.EliminarCuenta(ctx, perfil, caja)
	assert.ErrorIs(t, err, domain.ErrCuentaConMovimientos)
}

func TestActualizarCuenta_PreservaSaldo(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()
	caja := crearCaja(t, uc)
	capital := crearCapital(t, uc)

	_, err := uc.RegistrarTransaccion(ctx, perfil, dto.TransaccionRequest{
		Descripcion: "Aporte",
		Partidas: []dto.PartidaRequest{
			{CuentaID: caja, Debe: decimal.NewFromInt(250)},
			{CuentaID: capital, Haber: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)

	cuenta, err := uc.ActualizarCuenta(ctx, perfil, caja, dto.CuentaRequest{
		Nombre: "Caja General", Codigo: "110505", Tipo: "activo", Naturaleza: "deudora",
	})
	require.NoError(t, err)
	assert.Equal(t, "Caja General", cuenta.Nombre)
	assert.True(t, cuenta.Saldo.Equal(decimal.NewFromInt(250)), "el saldo no se toca al editar")
}

func TestCuentasVisibles_BusquedaSinAcentos(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()
	_, err := uc.CrearCuenta(ctx, perfil, dto.CuentaRequest{
		Nombre: "Depósitos Bancarios", Codigo: "1110", Tipo: "activo", Naturaleza: "deudora",
	})
	require.NoError(t, err)

	cuentas, err := uc.CuentasVisibles(ctx, perfil, "depositos")
	require.NoError(t, err)
	require.Len(t, cuentas, 1)
	assert.Equal(t, "Depósitos Bancarios", cuentas[0].Nombre)
}
