package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
)

// respondError traduce un error de dominio a su respuesta HTTP. Los errores
// de validación son 400, los recursos inexistentes 404, los conflictos con
// el estado del snapshot 409 con código específico y el resto 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTransaccionDescuadrada):
		return conflicto(c, "UNBALANCED", err)
	case errors.Is(err, domain.ErrCuentaConMovimientos):
		return conflicto(c, "ACCOUNT_IN_USE", err)
	case errors.Is(err, domain.ErrStockInsuficiente):
		return conflicto(c, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrSaldoInicialDuplicado):
		return conflicto(c, "INITIAL_BALANCE_EXISTS", err)
	case errors.Is(err, domain.ErrSinSaldoInicial):
		return conflicto(c, "INITIAL_BALANCE_REQUIRED", err)
	case errors.Is(err, domain.ErrDevolucionExcedida):
		return conflicto(c, "RETURN_EXCEEDED", err)
	case errors.Is(err, domain.ErrSaldoInicialNoEliminable):
		return conflicto(c, "INITIAL_BALANCE_LOCKED", err)
	case errors.Is(err, domain.ErrHistorialInconsistente):
		return conflicto(c, "HISTORY_CONFLICT", err)
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return conflicto(c, "EMAIL_EXISTS", err)
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrAccesoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case domain.EsValidacion(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case domain.EsNoEncontrado(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func conflicto(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func cuerpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
