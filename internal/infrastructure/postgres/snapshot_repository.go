package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación del puerto SnapshotRepository sobre
// PostgreSQL. Cada snapshot es una fila (perfil_id, clase) con el estado
// completo en una columna JSONB; el reemplazo es un upsert atómico.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository construye el adaptador de persistencia de snapshots.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Get devuelve el snapshot serializado o domain.ErrNoEncontrado si el
// perfil no tiene datos de esa clase.
func (r *SnapshotRepo) Get(ctx context.Context, perfilID, clase string) ([]byte, error) {
	query := `SELECT data FROM snapshots WHERE perfil_id = $1 AND clase = $2`
	var data []byte
	if err := r.pool.QueryRow(ctx, query, perfilID, clase).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoEncontrado
		}
		return nil, fmt.Errorf("get snapshot %s: %w", clase, err)
	}
	return data, nil
}

// Set inserta o reemplaza el snapshot completo.
func (r *SnapshotRepo) Set(ctx context.Context, perfilID, clase string, data []byte) error {
	query := `
		INSERT INTO snapshots (perfil_id, clase, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (perfil_id, clase)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, perfilID, clase, data); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", clase, err)
	}
	return nil
}

// ListClases lista las clases del perfil que empiezan con el prefijo dado.
func (r *SnapshotRepo) ListClases(ctx context.Context, perfilID, prefijo string) ([]string, error) {
	query := `
		SELECT clase FROM snapshots
		WHERE perfil_id = $1 AND clase LIKE $2 || '%'
		ORDER BY clase`
	rows, err := r.pool.Query(ctx, query, perfilID, prefijo)
	if err != nil {
		return nil, fmt.Errorf("list clases: %w", err)
	}
	defer rows.Close()
	var clases []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan clase: %w", err)
		}
		clases = append(clases, c)
	}
	return clases, rows.Err()
}
