// Package snapshot carga y guarda los estados serializados de los motores
// en el SnapshotRepository. Es la única frontera donde la aplicación toca
// la persistencia: dentro de una transición de dominio nunca hay I/O.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// Cargar lee y deserializa el snapshot de la clase dada. Si el perfil aún
// no tiene datos devuelve el valor cero de T (el estado inicial de todos
// los motores es su valor cero).
func Cargar[T any](ctx context.Context, repo repository.SnapshotRepository, perfilID, clase string) (T, error) {
	var estado T
	data, err := repo.Get(ctx, perfilID, clase)
	if err != nil {
		if errors.Is(err, domain.ErrNoEncontrado) {
			return estado, nil
		}
		return estado, fmt.Errorf("cargar snapshot %s: %w", clase, err)
	}
	if err := json.Unmarshal(data, &estado); err != nil {
		return estado, fmt.Errorf("deserializar snapshot %s: %w", clase, err)
	}
	return estado, nil
}

// Guardar serializa y reemplaza el snapshot completo de la clase dada.
func Guardar[T any](ctx context.Context, repo repository.SnapshotRepository, perfilID, clase string, estado T) error {
	data, err := json.Marshal(estado)
	if err != nil {
		return fmt.Errorf("serializar snapshot %s: %w", clase, err)
	}
	if err := repo.Set(ctx, perfilID, clase, data); err != nil {
		return fmt.Errorf("guardar snapshot %s: %w", clase, err)
	}
	return nil
}
