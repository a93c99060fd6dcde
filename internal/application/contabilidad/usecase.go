// Package contabilidad orquesta el libro mayor: carga el snapshot del
// perfil, aplica la transición de dominio y persiste el resultado. Toda
// mutación notifica al usuario, tanto la aceptada como la rechazada.
package contabilidad

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/snapshot"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Clase de snapshot del libro mayor en el repositorio.
const ClaseContabilidad = "contabilidad"

// UseCase casos de uso del libro mayor.
type UseCase struct {
	snapshots repository.SnapshotRepository
	notifier  ports.Notifier
}

// NewUseCase construye el caso de uso de contabilidad.
func NewUseCase(snapshots repository.SnapshotRepository, notifier ports.Notifier) *UseCase {
	return &UseCase{snapshots: snapshots, notifier: notifier}
}

// Libro devuelve el snapshot completo del libro mayor del perfil.
func (uc *UseCase) Libro(ctx context.Context, perfilID string) (ledger.EstadoLibro, error) {
	return snapshot.Cargar[ledger.EstadoLibro](ctx, uc.snapshots, perfilID, ClaseContabilidad)
}

// CrearCuenta agrega una cuenta al catálogo con saldo cero.
func (uc *UseCase) CrearCuenta(ctx context.Context, perfilID string, in dto.CuentaRequest) (ledger.Cuenta, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.Cuenta{}, err
	}
	id := uuid.New().String()
	nuevo, err := estado.AgregarCuenta(ledger.NuevaCuenta{
		ID:           id,
		Nombre:       in.Nombre,
		Codigo:       in.Codigo,
		Tipo:         ledger.TipoCuenta(in.Tipo),
		Naturaleza:   ledger.Naturaleza(in.Naturaleza),
		Subcategoria: in.Subcategoria,
	})
	if err != nil {
		uc.rechazo(ctx, "Cuenta no creada", err)
		return ledger.Cuenta{}, err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return ledger.Cuenta{}, err
	}
	uc.exito(ctx, "Cuenta creada", fmt.Sprintf("Se creó la cuenta %q.", in.Nombre))
	cuenta, _ := nuevo.BuscarCuenta(id)
	return cuenta, nil
}

// ActualizarCuenta modifica los datos descriptivos de una cuenta. El saldo
// nunca se toca por esta vía.
func (uc *UseCase) ActualizarCuenta(ctx context.Context, perfilID, cuentaID string, in dto.CuentaRequest) (ledger.Cuenta, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.Cuenta{}, err
	}
	nuevo, err := estado.ActualizarCuenta(ledger.Cuenta{
		ID:           cuentaID,
		Nombre:       in.Nombre,
		Codigo:       in.Codigo,
		Tipo:         ledger.TipoCuenta(in.Tipo),
		Naturaleza:   ledger.Naturaleza(in.Naturaleza),
		Subcategoria: in.Subcategoria,
	})
	if err != nil {
		uc.rechazo(ctx, "Cuenta no actualizada", err)
		return ledger.Cuenta{}, err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return ledger.Cuenta{}, err
	}
	uc.exito(ctx, "Cuenta actualizada", fmt.Sprintf("Se actualizó la cuenta %q.", in.Nombre))
	cuenta, _ := nuevo.BuscarCuenta(cuentaID)
	return cuenta, nil
}

// EliminarCuenta borra una cuenta sin movimientos.
func (uc *UseCase) EliminarCuenta(ctx context.Context, perfilID, cuentaID string) error {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return err
	}
	nuevo, err := estado.EliminarCuenta(cuentaID)
	if err != nil {
		uc.rechazo(ctx, "Cuenta no eliminada", err)
		return err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return err
	}
	uc.exito(ctx, "Cuenta eliminada", "La cuenta fue eliminada del catálogo.")
	return nil
}

// SeleccionarCuenta marca la cuenta activa del libro.
func (uc *UseCase) SeleccionarCuenta(ctx context.Context, perfilID, cuentaID string) (ledger.EstadoLibro, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.EstadoLibro{}, err
	}
	nuevo, err := estado.SeleccionarCuenta(cuentaID)
	if err != nil {
		return ledger.EstadoLibro{}, err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return ledger.EstadoLibro{}, err
	}
	return nuevo, nil
}

// FiltrarCuentas fija el filtro por tipo del catálogo.
func (uc *UseCase) FiltrarCuentas(ctx context.Context, perfilID, tipo string) (ledger.EstadoLibro, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.EstadoLibro{}, err
	}
	nuevo, err := estado.FiltrarCuentas(ledger.TipoCuenta(tipo))
	if err != nil {
		return ledger.EstadoLibro{}, err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return ledger.EstadoLibro{}, err
	}
	return nuevo, nil
}

// RegistrarTransaccion valida y asienta una transacción de diario. El
// asiento debe cuadrar (débitos = créditos dentro del epsilon del motor)
// y cada partida debe apuntar a una cuenta existente.
func (uc *UseCase) RegistrarTransaccion(ctx context.Context, perfilID string, in dto.TransaccionRequest) (ledger.Transaccion, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.Transaccion{}, err
	}
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		uc.rechazo(ctx, "Transacción no registrada", err)
		return ledger.Transaccion{}, err
	}
	nueva := ledger.NuevaTransaccion{
		ID:          uuid.New().String(),
		Fecha:       fecha,
		Descripcion: in.Descripcion,
	}
	for _, p := range in.Partidas {
		nueva.Partidas = append(nueva.Partidas, ledger.NuevaPartida{
			ID:       uuid.New().String(),
			CuentaID: p.CuentaID,
			Debe:     p.Debe,
			Haber:    p.Haber,
		})
	}
	nuevo, err := estado.AgregarTransaccion(nueva)
	if err != nil {
		uc.rechazo(ctx, "Transacción no registrada", err)
		return ledger.Transaccion{}, err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return ledger.Transaccion{}, err
	}
	uc.exito(ctx, "Transacción registrada", fmt.Sprintf("Asiento %q registrado.", in.Descripcion))
	return nuevo.Transacciones[len(nuevo.Transacciones)-1], nil
}

// EliminarTransaccion revierte el efecto exacto de un asiento sobre los
// saldos y lo quita del diario.
func (uc *UseCase) EliminarTransaccion(ctx context.Context, perfilID, txID string) error {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return err
	}
	nuevo, err := estado.EliminarTransaccion(txID)
	if err != nil {
		uc.rechazo(ctx, "Transacción no eliminada", err)
		return err
	}
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return err
	}
	uc.exito(ctx, "Transacción eliminada", "El asiento fue revertido y eliminado.")
	return nil
}

// EliminarTodasLasTransacciones vacía el diario y deja todos los saldos
// en cero. Las cuentas sobreviven.
func (uc *UseCase) EliminarTodasLasTransacciones(ctx context.Context, perfilID string) error {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return err
	}
	nuevo := estado.EliminarTodasLasTransacciones()
	if err := uc.guardar(ctx, perfilID, nuevo); err != nil {
		return err
	}
	uc.exito(ctx, "Diario vaciado", "Se eliminaron todas las transacciones.")
	return nil
}

// Ecuacion calcula la ecuación contable sobre el estado actual.
func (uc *UseCase) Ecuacion(ctx context.Context, perfilID string) (ledger.Ecuacion, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return ledger.Ecuacion{}, err
	}
	return estado.EcuacionContable(), nil
}

// CuentasVisibles aplica el filtro por tipo persistido y una búsqueda por
// texto (insensible a acentos) sobre el catálogo.
func (uc *UseCase) CuentasVisibles(ctx context.Context, perfilID, buscar string) ([]ledger.Cuenta, error) {
	estado, err := uc.Libro(ctx, perfilID)
	if err != nil {
		return nil, err
	}
	return estado.CuentasVisibles(buscar), nil
}

func (uc *UseCase) guardar(ctx context.Context, perfilID string, estado ledger.EstadoLibro) error {
	return snapshot.Guardar(ctx, uc.snapshots, perfilID, ClaseContabilidad, estado)
}

func (uc *UseCase) exito(ctx context.Context, titulo, mensaje string) {
	uc.notifier.Notify(ctx, ports.Notification{Titulo: titulo, Mensaje: mensaje, Severidad: ports.SeveridadExito})
}

func (uc *UseCase) rechazo(ctx context.Context, titulo string, err error) {
	uc.notifier.Notify(ctx, ports.Notification{Titulo: titulo, Mensaje: err.Error(), Severidad: ports.SeveridadAdvertencia})
}
