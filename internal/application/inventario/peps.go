package inventario

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/snapshot"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

// PEPS devuelve el snapshot del kardex PEPS (primeras entradas, primeras
// salidas).
func (uc *UseCase) PEPS(ctx context.Context, perfilID, instancia string) (kardex.EstadoPEPS, error) {
	return snapshot.Cargar[kardex.EstadoPEPS](ctx, uc.snapshots, perfilID, clase(prefijoPEPS, instancia))
}

// SaldoInicialPEPS registra el lote de apertura. Debe ser la primera
// operación y es única por instancia.
func (uc *UseCase) SaldoInicialPEPS(ctx context.Context, perfilID, instancia string, in dto.EntradaLoteRequest) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Saldo inicial", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		entrada, err := entradaLoteDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarSaldoInicial(entrada)
	})
}

// CompraPEPS agrega un lote al final de la cola.
func (uc *UseCase) CompraPEPS(ctx context.Context, perfilID, instancia string, in dto.EntradaLoteRequest) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Compra", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		entrada, err := entradaLoteDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarCompra(entrada)
	})
}

// VentaPEPS consume unidades empezando por el lote más antiguo.
func (uc *UseCase) VentaPEPS(ctx context.Context, perfilID, instancia string, in dto.VentaRequest) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Venta", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		entrada, err := entradaVentaDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarVenta(entrada)
	})
}

// DevolucionPEPS reingresa unidades vendidas de un lote específico.
func (uc *UseCase) DevolucionPEPS(ctx context.Context, perfilID, instancia string, in dto.DevolucionRequest) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Devolución", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		entrada, err := entradaDevolucionDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarDevolucion(entrada)
	})
}

// EditarPEPS modifica una operación y reconstruye el historial completo.
func (uc *UseCase) EditarPEPS(ctx context.Context, perfilID, instancia, opID string, in dto.EdicionOperacionRequest) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Edición", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		ed, err := edicionDe(in)
		if err != nil {
			return e, err
		}
		return e.EditarOperacion(opID, ed)
	})
}

// EliminarPEPS quita una operación y reconstruye el historial completo.
func (uc *UseCase) EliminarPEPS(ctx context.Context, perfilID, instancia, opID string) (kardex.EstadoPEPS, error) {
	return uc.mutarPEPS(ctx, perfilID, instancia, "Eliminación", func(e kardex.EstadoPEPS) (kardex.EstadoPEPS, error) {
		return e.EliminarOperacion(opID)
	})
}

func (uc *UseCase) mutarPEPS(ctx context.Context, perfilID, instancia, operacion string, fn func(kardex.EstadoPEPS) (kardex.EstadoPEPS, error)) (kardex.EstadoPEPS, error) {
	estado, err := uc.PEPS(ctx, perfilID, instancia)
	if err != nil {
		return kardex.EstadoPEPS{}, err
	}
	nuevo, err := fn(estado)
	if err != nil {
		uc.rechazo(ctx, operacion+" rechazada en kardex PEPS", err)
		return kardex.EstadoPEPS{}, err
	}
	if err := snapshot.Guardar(ctx, uc.snapshots, perfilID, clase(prefijoPEPS, instancia), nuevo); err != nil {
		return kardex.EstadoPEPS{}, err
	}
	uc.exito(ctx, operacion+" aplicada", "Kardex PEPS actualizado.")
	return nuevo, nil
}

func entradaLoteDe(in dto.EntradaLoteRequest) (kardex.EntradaLote, error) {
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return kardex.EntradaLote{}, err
	}
	return kardex.EntradaLote{
		OperacionID:   uuid.New().String(),
		LoteID:        uuid.New().String(),
		Fecha:         fecha,
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		Unidades:      in.Unidades,
		CostoUnitario: in.CostoUnitario,
	}, nil
}

func entradaVentaDe(in dto.VentaRequest) (kardex.EntradaVenta, error) {
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return kardex.EntradaVenta{}, err
	}
	return kardex.EntradaVenta{
		OperacionID: uuid.New().String(),
		Fecha:       fecha,
		Descripcion: in.Descripcion,
		Unidades:    in.Unidades,
	}, nil
}

func entradaDevolucionDe(in dto.DevolucionRequest) (kardex.EntradaDevolucion, error) {
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return kardex.EntradaDevolucion{}, err
	}
	return kardex.EntradaDevolucion{
		OperacionID: uuid.New().String(),
		Fecha:       fecha,
		Descripcion: in.Descripcion,
		LoteID:      in.LoteID,
		Unidades:    in.Unidades,
	}, nil
}

func edicionDe(in dto.EdicionOperacionRequest) (kardex.EdicionLote, error) {
	fecha, err := dto.ParseFecha(in.Fecha)
	if err != nil {
		return kardex.EdicionLote{}, err
	}
	return kardex.EdicionLote{
		Fecha:         fecha,
		Descripcion:   in.Descripcion,
		Unidades:      in.Unidades,
		CostoUnitario: in.CostoUnitario,
	}, nil
}
