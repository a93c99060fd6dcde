package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/contabilidad"
	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// ContabilidadHandler maneja las peticiones HTTP del libro mayor (protegido).
type ContabilidadHandler struct {
	uc *contabilidad.UseCase
}

// NewContabilidadHandler construye el handler.
func NewContabilidadHandler(uc *contabilidad.UseCase) *ContabilidadHandler {
	return &ContabilidadHandler{uc: uc}
}

// ListarCuentas godoc
// @Summary      Listar cuentas del catálogo
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  false  "filtro persistente por tipo (activo, pasivo, capital, ingreso, gasto; vacío lo limpia)"
// @Param        buscar  query  string  false  "búsqueda por nombre o código, sin distinguir acentos"
// @Success      200  {array}  ledger.Cuenta
// @Router       /api/cuentas [get]
func (h *ContabilidadHandler) ListarCuentas(c *fiber.Ctx) error {
	perfilID := GetPerfilID(c)
	if tipo, enviado := c.Queries()["tipo"]; enviado {
		if _, err := h.uc.FiltrarCuentas(c.Context(), perfilID, tipo); err != nil {
			return respondError(c, err)
		}
	}
	cuentas, err := h.uc.CuentasVisibles(c.Context(), perfilID, c.Query("buscar"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cuentas)
}

// CrearCuenta godoc
// @Summary      Crear cuenta
// @Tags         contabilidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CuentaRequest  true  "nombre, codigo, tipo, naturaleza"
// @Success      201  {object}  ledger.Cuenta
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cuentas [post]
func (h *ContabilidadHandler) CrearCuenta(c *fiber.Ctx) error {
	var in dto.CuentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	cuenta, err := h.uc.CrearCuenta(c.Context(), GetPerfilID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cuenta)
}

// ActualizarCuenta godoc
// @Summary      Actualizar cuenta (datos descriptivos, el saldo no cambia)
// @Tags         contabilidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la cuenta"
// @Param        body  body  dto.CuentaRequest  true  "nombre, codigo, tipo, naturaleza"
// @Success      200  {object}  ledger.Cuenta
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cuentas/{id} [put]
func (h *ContabilidadHandler) ActualizarCuenta(c *fiber.Ctx) error {
	var in dto.CuentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	cuenta, err := h.uc.ActualizarCuenta(c.Context(), GetPerfilID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cuenta)
}

// EliminarCuenta godoc
// @Summary      Eliminar cuenta sin movimientos
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cuentas/{id} [delete]
func (h *ContabilidadHandler) EliminarCuenta(c *fiber.Ctx) error {
	if err := h.uc.EliminarCuenta(c.Context(), GetPerfilID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SeleccionarCuenta godoc
// @Summary      Marcar la cuenta activa del libro
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la cuenta"
// @Success      200  {object}  ledger.EstadoLibro
// @Router       /api/cuentas/{id}/seleccionar [post]
func (h *ContabilidadHandler) SeleccionarCuenta(c *fiber.Ctx) error {
	estado, err := h.uc.SeleccionarCuenta(c.Context(), GetPerfilID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// Libro godoc
// @Summary      Libro mayor completo (cuentas + transacciones)
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ledger.EstadoLibro
// @Router       /api/transacciones [get]
func (h *ContabilidadHandler) Libro(c *fiber.Ctx) error {
	estado, err := h.uc.Libro(c.Context(), GetPerfilID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(estado)
}

// RegistrarTransaccion godoc
// @Summary      Registrar asiento de diario
// @Tags         contabilidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransaccionRequest  true  "fecha, descripcion, partidas"
// @Success      201  {object}  ledger.Transaccion
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transacciones [post]
func (h *ContabilidadHandler) RegistrarTransaccion(c *fiber.Ctx) error {
	var in dto.TransaccionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	tx, err := h.uc.RegistrarTransaccion(c.Context(), GetPerfilID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// EliminarTransaccion godoc
// @Summary      Eliminar asiento (revierte su efecto exacto sobre los saldos)
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transacciones/{id} [delete]
func (h *ContabilidadHandler) EliminarTransaccion(c *fiber.Ctx) error {
	if err := h.uc.EliminarTransaccion(c.Context(), GetPerfilID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EliminarTodasLasTransacciones godoc
// @Summary      Vaciar el diario y dejar todos los saldos en cero (admin)
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/transacciones [delete]
func (h *ContabilidadHandler) EliminarTodasLasTransacciones(c *fiber.Ctx) error {
	if err := h.uc.EliminarTodasLasTransacciones(c.Context(), GetPerfilID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ecuacion godoc
// @Summary      Ecuación contable (activos = pasivos + capital)
// @Tags         contabilidad
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ledger.Ecuacion
// @Router       /api/contabilidad/ecuacion [get]
func (h *ContabilidadHandler) Ecuacion(c *fiber.Ctx) error {
	ecuacion, err := h.uc.Ecuacion(c.Context(), GetPerfilID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ecuacion)
}
