package inventario

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/snapshot"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

// Promedio devuelve el snapshot del kardex por promedio ponderado.
func (uc *UseCase) Promedio(ctx context.Context, perfilID, instancia string) (kardex.EstadoPromedio, error) {
	return snapshot.Cargar[kardex.EstadoPromedio](ctx, uc.snapshots, perfilID, clase(prefijoPromedio, instancia))
}

// AgregarPromedio anexa una operación al kardex promedio y devuelve la fila
// calculada (costos y saldos derivados incluidos).
func (uc *UseCase) AgregarPromedio(ctx context.Context, perfilID, instancia string, in dto.OperacionPromedioRequest) (kardex.OperacionPromedio, error) {
	estado, err := uc.Promedio(ctx, perfilID, instancia)
	if err != nil {
		return kardex.OperacionPromedio{}, err
	}
	entrada, err := entradaPromedioDe(uuid.New().String(), in)
	if err != nil {
		uc.rechazo(ctx, "Operación no registrada", err)
		return kardex.OperacionPromedio{}, err
	}
	nuevo, err := estado.AgregarOperacion(entrada)
	if err != nil {
		uc.rechazo(ctx, "Operación no registrada", err)
		return kardex.OperacionPromedio{}, err
	}
	if err := uc.guardarPromedio(ctx, perfilID, instancia, nuevo); err != nil {
		return kardex.OperacionPromedio{}, err
	}
	uc.exito(ctx, "Operación registrada", "Kardex promedio actualizado.")
	return nuevo.Operaciones[len(nuevo.Operaciones)-1], nil
}

// EditarPromedio reemplaza los insumos de una operación y recalcula en
// cascada el resto del kardex. Si la cascada invalida una operación
// posterior la edición completa se rechaza.
func (uc *UseCase) EditarPromedio(ctx context.Context, perfilID, instancia, opID string, in dto.OperacionPromedioRequest) (kardex.EstadoPromedio, error) {
	estado, err := uc.Promedio(ctx, perfilID, instancia)
	if err != nil {
		return kardex.EstadoPromedio{}, err
	}
	entrada, err := entradaPromedioDe(opID, in)
	if err != nil {
		uc.rechazo(ctx, "Operación no editada", err)
		return kardex.EstadoPromedio{}, err
	}
	nuevo, err := estado.EditarOperacion(opID, entrada)
	if err != nil {
		uc.rechazo(ctx, "Operación no editada", err)
		return kardex.EstadoPromedio{}, err
	}
	if err := uc.guardarPromedio(ctx, perfilID, instancia, nuevo); err != nil {
		return kardex.EstadoPromedio{}, err
	}
	uc.exito(ctx, "Operación editada", "El kardex se recalculó en cascada.")
	return nuevo, nil
}

// EliminarPromedio quita una operación y recalcula en cascada. El saldo
// inicial nunca es eliminable.
func (uc *UseCase) EliminarPromedio(ctx context.Context, perfilID, instancia, opID string) (kardex.EstadoPromedio, error) {
	estado, err := uc.Promedio(ctx, perfilID, instancia)
	if err != nil {
		return kardex.EstadoPromedio{}, err
	}
	nuevo, err := estado.EliminarOperacion(opID)
	if err != nil {
		uc.rechazo(ctx, "Operación no eliminada", err)
		return kardex.EstadoPromedio{}, err
	}
	if err := uc.guardarPromedio(ctx, perfilID, instancia, nuevo); err != nil {
		return kardex.EstadoPromedio{}, err
	}
	uc.exito(ctx, "Operación eliminada", "El kardex se recalculó en cascada.")
	return nuevo, nil
}

func (uc *UseCase) guardarPromedio(ctx context.Context, perfilID, instancia string, estado kardex.EstadoPromedio) error {
	return snapshot.Guardar(ctx, uc.snapshots, perfilID, clase(prefijoPromedio, instancia), estado)
}

func entradaPromedioDe(id string, in dto.OperacionPromedioRequest) (kardex.EntradaPromedio, error) {
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return kardex.EntradaPromedio{}, err
	}
	return kardex.EntradaPromedio{
		ID:            id,
		Fecha:         fecha,
		Tipo:          kardex.TipoOperacion(in.Tipo),
		Descripcion:   in.Descripcion,
		Unidades:      in.Unidades,
		CostoUnitario: in.CostoUnitario,
	}, nil
}
