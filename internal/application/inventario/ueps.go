package inventario

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/snapshot"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

// UEPS devuelve el snapshot del kardex UEPS (últimas entradas, primeras
// salidas).
func (uc *UseCase) UEPS(ctx context.Context, perfilID, instancia string) (kardex.EstadoUEPS, error) {
	return snapshot.Cargar[kardex.EstadoUEPS](ctx, uc.snapshots, perfilID, clase(prefijoUEPS, instancia))
}

// SaldoInicialUEPS registra el lote de apertura. Debe ser la primera
// operación y es única por instancia.
func (uc *UseCase) SaldoInicialUEPS(ctx context.Context, perfilID, instancia string, in dto.EntradaLoteRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Saldo inicial", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		entrada, err := entradaLoteDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarSaldoInicial(entrada)
	})
}

// CompraUEPS agrega un lote al frente de la pila.
func (uc *UseCase) CompraUEPS(ctx context.Context, perfilID, instancia string, in dto.EntradaLoteRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Compra", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		entrada, err := entradaLoteDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarCompra(entrada)
	})
}

// VentaUEPS consume unidades empezando por el lote más reciente.
func (uc *UseCase) VentaUEPS(ctx context.Context, perfilID, instancia string, in dto.VentaRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Venta", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		entrada, err := entradaVentaDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarVenta(entrada)
	})
}

// DevolucionUEPS reingresa unidades vendidas a un lote específico.
func (uc *UseCase) DevolucionUEPS(ctx context.Context, perfilID, instancia string, in dto.DevolucionRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Devolución", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		entrada, err := entradaDevolucionDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarDevolucion(entrada)
	})
}

// DevolucionCompraUEPS devuelve al proveedor unidades no vendidas de un
// lote: baja sus unidades restantes y el saldo valorado.
func (uc *UseCase) DevolucionCompraUEPS(ctx context.Context, perfilID, instancia string, in dto.DevolucionRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Devolución de compra", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		entrada, err := entradaDevolucionDe(in)
		if err != nil {
			return e, err
		}
		return e.AgregarDevolucionCompra(entrada)
	})
}

// EditarUEPS modifica una operación y reconstruye el historial completo.
func (uc *UseCase) EditarUEPS(ctx context.Context, perfilID, instancia, opID string, in dto.EdicionOperacionRequest) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Edición", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		ed, err := edicionDe(in)
		if err != nil {
			return e, err
		}
		return e.EditarOperacion(opID, ed)
	})
}

// EliminarUEPS quita una operación y reconstruye el historial completo.
func (uc *UseCase) EliminarUEPS(ctx context.Context, perfilID, instancia, opID string) (kardex.EstadoUEPS, error) {
	return uc.mutarUEPS(ctx, perfilID, instancia, "Eliminación", func(e kardex.EstadoUEPS) (kardex.EstadoUEPS, error) {
		return e.EliminarOperacion(opID)
	})
}

func (uc *UseCase) mutarUEPS(ctx context.Context, perfilID, instancia, operacion string, fn func(kardex.EstadoUEPS) (kardex.EstadoUEPS, error)) (kardex.EstadoUEPS, error) {
	estado, err := uc.UEPS(ctx, perfilID, instancia)
	if err != nil {
		return kardex.EstadoUEPS{}, err
	}
	nuevo, err := fn(estado)
	if err != nil {
		uc.rechazo(ctx, operacion+" rechazada en kardex UEPS", err)
		return kardex.EstadoUEPS{}, err
	}
	if err := snapshot.Guardar(ctx, uc.snapshots, perfilID, clase(prefijoUEPS, instancia), nuevo); err != nil {
		return kardex.EstadoUEPS{}, err
	}
	uc.exito(ctx, operacion+" aplicada", "Kardex UEPS actualizado.")
	return nuevo, nil
}
