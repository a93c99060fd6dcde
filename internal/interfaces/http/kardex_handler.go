package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/inventario"
	"github.com/jhoicas/Contable-api/internal/domain/kardex"
)

// KardexHandler maneja las peticiones HTTP de los tres motores de kardex
// (protegido). La instancia se elige con ?instancia=; si falta se usa la
// principal.
type KardexHandler struct {
	uc *inventario.UseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *inventario.UseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

func instancia(c *fiber.Ctx) string {
	return c.Query("instancia")
}

// Instancias godoc
// @Summary      Listar instancias con nombre de un método de kardex
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        metodo  path  string  true  "promedio | peps | ueps"
// @Success      200  {array}  string
// @Router       /api/kardex/{metodo}/instancias [get]
func (h *KardexHandler) Instancias(c *fiber.Ctx) error {
	instancias, err := h.uc.Instancias(c.Context(), GetPerfilID(c), c.Params("metodo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(instancias)
}

// ── Promedio ponderado ────────────────────────────────────────────────────────

// Promedio godoc
// @Summary      Kardex por promedio ponderado
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        instancia  query  string  false  "instancia (default: principal)"
// @Success      200  {object}  kardex.EstadoPromedio
// @Router       /api/kardex/promedio [get]
func (h *KardexHandler) Promedio(c *fiber.Ctx) error {
	estado, err := h.uc.Promedio(c.Context(), GetPerfilID(c), instancia(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// AgregarPromedio godoc
// @Summary      Registrar operación en el kardex promedio
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperacionPromedioRequest  true  "tipo, unidades, costo_unitario (entradas)"
// @Success      201  {object}  kardex.OperacionPromedio
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/promedio/operaciones [post]
func (h *KardexHandler) AgregarPromedio(c *fiber.Ctx) error {
	var in dto.OperacionPromedioRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	op, err := h.uc.AgregarPromedio(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(op)
}

// EditarPromedio godoc
// @Summary      Editar operación del kardex promedio (recalcula en cascada)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la operación"
// @Param        body  body  dto.OperacionPromedioRequest  true  "insumos nuevos"
// @Success      200  {object}  kardex.EstadoPromedio
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/promedio/operaciones/{id} [put]
func (h *KardexHandler) EditarPromedio(c *fiber.Ctx) error {
	var in dto.OperacionPromedioRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.EditarPromedio(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// EliminarPromedio godoc
// @Summary      Eliminar operación del kardex promedio (recalcula en cascada)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la operación"
// @Success      200  {object}  kardex.EstadoPromedio
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/promedio/operaciones/{id} [delete]
func (h *KardexHandler) EliminarPromedio(c *fiber.Ctx) error {
	estado, err := h.uc.EliminarPromedio(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// ── PEPS ──────────────────────────────────────────────────────────────────────

// PEPS godoc
// @Summary      Kardex PEPS (primeras entradas, primeras salidas)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        instancia  query  string  false  "instancia (default: principal)"
// @Success      200  {object}  kardex.EstadoPEPS
// @Router       /api/kardex/peps [get]
func (h *KardexHandler) PEPS(c *fiber.Ctx) error {
	estado, err := h.uc.PEPS(c.Context(), GetPerfilID(c), instancia(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// SaldoInicialPEPS godoc
// @Summary      Registrar saldo inicial PEPS (única y primera operación)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaLoteRequest  true  "nombre, unidades, costo_unitario"
// @Success      201  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/saldo-inicial [post]
func (h *KardexHandler) SaldoInicialPEPS(c *fiber.Ctx) error {
	return h.mutarLotePEPS(c, h.uc.SaldoInicialPEPS)
}

// CompraPEPS godoc
// @Summary      Registrar compra PEPS (el lote entra al final de la cola)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaLoteRequest  true  "nombre, unidades, costo_unitario"
// @Success      201  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/compras [post]
func (h *KardexHandler) CompraPEPS(c *fiber.Ctx) error {
	return h.mutarLotePEPS(c, h.uc.CompraPEPS)
}

// VentaPEPS godoc
// @Summary      Registrar venta PEPS (consume desde el lote más antiguo)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "unidades"
// @Success      201  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/ventas [post]
func (h *KardexHandler) VentaPEPS(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.VentaPEPS(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}

// DevolucionPEPS godoc
// @Summary      Registrar devolución de venta PEPS sobre un lote específico
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DevolucionRequest  true  "lote_id, unidades"
// @Success      201  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/devoluciones [post]
func (h *KardexHandler) DevolucionPEPS(c *fiber.Ctx) error {
	var in dto.DevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.DevolucionPEPS(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}

// EditarPEPS godoc
// @Summary      Editar operación PEPS (reconstruye el historial completo)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la operación"
// @Param        body  body  dto.EdicionOperacionRequest  true  "insumos nuevos"
// @Success      200  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/operaciones/{id} [put]
func (h *KardexHandler) EditarPEPS(c *fiber.Ctx) error {
	var in dto.EdicionOperacionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.EditarPEPS(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// EliminarPEPS godoc
// @Summary      Eliminar operación PEPS (reconstruye el historial completo)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la operación"
// @Success      200  {object}  kardex.EstadoPEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/peps/operaciones/{id} [delete]
func (h *KardexHandler) EliminarPEPS(c *fiber.Ctx) error {
	estado, err := h.uc.EliminarPEPS(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// ── UEPS ──────────────────────────────────────────────────────────────────────

// UEPS godoc
// @Summary      Kardex UEPS (últimas entradas, primeras salidas)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        instancia  query  string  false  "instancia (default: principal)"
// @Success      200  {object}  kardex.EstadoUEPS
// @Router       /api/kardex/ueps [get]
func (h *KardexHandler) UEPS(c *fiber.Ctx) error {
	estado, err := h.uc.UEPS(c.Context(), GetPerfilID(c), instancia(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// SaldoInicialUEPS godoc
// @Summary      Registrar saldo inicial UEPS (única y primera operación)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaLoteRequest  true  "nombre, unidades, costo_unitario"
// @Success      201  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/saldo-inicial [post]
func (h *KardexHandler) SaldoInicialUEPS(c *fiber.Ctx) error {
	return h.mutarLoteUEPS(c, h.uc.SaldoInicialUEPS)
}

// CompraUEPS godoc
// @Summary      Registrar compra UEPS (el lote entra al frente de la pila)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaLoteRequest  true  "nombre, unidades, costo_unitario"
// @Success      201  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/compras [post]
func (h *KardexHandler) CompraUEPS(c *fiber.Ctx) error {
	return h.mutarLoteUEPS(c, h.uc.CompraUEPS)
}

// VentaUEPS godoc
// @Summary      Registrar venta UEPS (consume desde el lote más reciente)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "unidades"
// @Success      201  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/ventas [post]
func (h *KardexHandler) VentaUEPS(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.VentaUEPS(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}

// DevolucionUEPS godoc
// @Summary      Registrar devolución de venta UEPS sobre un lote específico
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DevolucionRequest  true  "lote_id, unidades"
// @Success      201  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/devoluciones [post]
func (h *KardexHandler) DevolucionUEPS(c *fiber.Ctx) error {
	return h.mutarDevolucionUEPS(c, h.uc.DevolucionUEPS)
}

// DevolucionCompraUEPS godoc
// @Summary      Registrar devolución al proveedor (baja unidades del lote)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DevolucionRequest  true  "lote_id, unidades"
// @Success      201  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/devoluciones-compra [post]
func (h *KardexHandler) DevolucionCompraUEPS(c *fiber.Ctx) error {
	return h.mutarDevolucionUEPS(c, h.uc.DevolucionCompraUEPS)
}

// EditarUEPS godoc
// @Summary      Editar operación UEPS (reconstruye el historial completo)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la operación"
// @Param        body  body  dto.EdicionOperacionRequest  true  "insumos nuevos"
// @Success      200  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/operaciones/{id} [put]
func (h *KardexHandler) EditarUEPS(c *fiber.Ctx) error {
	var in dto.EdicionOperacionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := h.uc.EditarUEPS(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// EliminarUEPS godoc
// @Summary      Eliminar operación UEPS (reconstruye el historial completo)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la operación"
// @Success      200  {object}  kardex.EstadoUEPS
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/kardex/ueps/operaciones/{id} [delete]
func (h *KardexHandler) EliminarUEPS(c *fiber.Ctx) error {
	estado, err := h.uc.EliminarUEPS(c.Context(), GetPerfilID(c), instancia(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *KardexHandler) mutarLotePEPS(c *fiber.Ctx, fn func(context.Context, string, string, dto.EntradaLoteRequest) (kardex.EstadoPEPS, error)) error {
	var in dto.EntradaLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := fn(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}

func (h *KardexHandler) mutarLoteUEPS(c *fiber.Ctx, fn func(context.Context, string, string, dto.EntradaLoteRequest) (kardex.EstadoUEPS, error)) error {
	var in dto.EntradaLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := fn(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}

func (h *KardexHandler) mutarDevolucionUEPS(c *fiber.Ctx, fn func(context.Context, string, string, dto.DevolucionRequest) (kardex.EstadoUEPS, error)) error {
	var in dto.DevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	estado, err := fn(c.Context(), GetPerfilID(c), instancia(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(estado)
}
