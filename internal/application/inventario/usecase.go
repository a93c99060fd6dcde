// Package inventario orquesta los tres motores de kardex (promedio
// ponderado, PEPS y UEPS). Cada perfil puede tener varias instancias con
// nombre de cada motor; cada instancia es un snapshot independiente.
package inventario

import (
	"context"
	"strings"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// InstanciaPrincipal es la instancia por defecto cuando la petición no
// nombra una.
const InstanciaPrincipal = "principal"

// Prefijos de clase de snapshot por motor.
const (
	prefijoPromedio = "kardex_promedio"
	prefijoPEPS     = "kardex_peps"
	prefijoUEPS     = "kardex_ueps"
)

// UseCase casos de uso de inventario sobre los tres motores.
type UseCase struct {
	snapshots repository.SnapshotRepository
	notifier  ports.Notifier
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(snapshots repository.SnapshotRepository, notifier ports.Notifier) *UseCase {
	return &UseCase{snapshots: snapshots, notifier: notifier}
}

func clase(prefijo, instancia string) string {
	if instancia == "" {
		instancia = InstanciaPrincipal
	}
	return prefijo + ":" + instancia
}

// Instancias lista las instancias con nombre que el perfil tiene para el
// método dado ("promedio", "peps" o "ueps").
func (uc *UseCase) Instancias(ctx context.Context, perfilID, metodo string) ([]string, error) {
	prefijo, err := prefijoDeMetodo(metodo)
	if err != nil {
		return nil, err
	}
	clases, err := uc.snapshots.ListClases(ctx, perfilID, prefijo+":")
	if err != nil {
		return nil, err
	}
	instancias := make([]string, 0, len(clases))
	for _, c := range clases {
		instancias = append(instancias, strings.TrimPrefix(c, prefijo+":"))
	}
	return instancias, nil
}

func prefijoDeMetodo(metodo string) (string, error) {
	switch metodo {
	case "promedio":
		return prefijoPromedio, nil
	case "peps":
		return prefijoPEPS, nil
	case "ueps":
		return prefijoUEPS, nil
	default:
		return "", domain.ErrEntradaInvalida
	}
}

func (uc *UseCase) exito(ctx context.Context, titulo, mensaje string) {
	uc.notifier.Notify(ctx, ports.Notification{Titulo: titulo, Mensaje: mensaje, Severidad: ports.SeveridadExito})
}

func (uc *UseCase) rechazo(ctx context.Context, titulo string, err error) {
	uc.notifier.Notify(ctx, ports.Notification{Titulo: titulo, Mensaje: err.Error(), Severidad: ports.SeveridadAdvertencia})
}
