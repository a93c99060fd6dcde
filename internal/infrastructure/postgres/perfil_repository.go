package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PerfilRepository = (*PerfilRepo)(nil)

// PerfilRepo implementación del puerto PerfilRepository sobre PostgreSQL.
type PerfilRepo struct {
	pool *pgxpool.Pool
}

// NewPerfilRepository construye el adaptador de persistencia para perfiles.
func NewPerfilRepository(pool *pgxpool.Pool) *PerfilRepo {
	return &PerfilRepo{pool: pool}
}

// Create persiste un nuevo perfil.
func (r *PerfilRepo) Create(perfil *entity.Perfil) error {
	query := `INSERT INTO perfiles (id, nombre, created_at) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(context.Background(), query, perfil.ID, perfil.Nombre, perfil.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert perfil: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID; nil si no existe.
func (r *PerfilRepo) GetByID(id string) (*entity.Perfil, error) {
	query := `SELECT id, nombre, created_at FROM perfiles WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get perfil by id")
}

// GetByNombre obtiene un perfil por nombre; nil si no existe.
func (r *PerfilRepo) GetByNombre(nombre string) (*entity.Perfil, error) {
	query := `SELECT id, nombre, created_at FROM perfiles WHERE nombre = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, nombre), "get perfil by nombre")
}

func (r *PerfilRepo) scanOne(row pgx.Row, op string) (*entity.Perfil, error) {
	var p entity.Perfil
	if err := row.Scan(&p.ID, &p.Nombre, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
