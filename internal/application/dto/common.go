package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormatoFecha formato de fecha aceptado en las peticiones.
const FormatoFecha = "2006-01-02"

// ParseFecha interpreta una fecha "YYYY-MM-DD"; vacía significa hoy.
func ParseFecha(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(FormatoFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, se espera YYYY-MM-DD", domain.ErrEntradaInvalida, s)
	}
	return t, nil
}
