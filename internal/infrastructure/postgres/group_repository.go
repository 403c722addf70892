package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación del puerto GroupRepository sobre PostgreSQL (usable con pool o tx).
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// Create persiste un grupo nuevo.
func (r *GroupRepo) Create(group *entity.Group) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO groups (id, name, owner_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		group.ID, group.Name, group.OwnerID, group.Status, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewErrorf(domain.KindUnique, "ya existe un grupo con el nombre '%s'", group.Name)
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID. Devuelve nil sin error si no existe.
func (r *GroupRepo) GetByID(id string) (*entity.Group, error) {
	var g entity.Group
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, owner_id, status, created_at, updated_at FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.OwnerID, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

// List lista grupos con paginación.
func (r *GroupRepo) List(limit, offset int) ([]*entity.Group, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, owner_id, status, created_at, updated_at
		 FROM groups ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.OwnerID, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// FilterExisting devuelve el subconjunto de ids que existen en groups.
func (r *GroupRepo) FilterExisting(ids []string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM groups WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("filter groups: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan group id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SwapOwner actualiza owner_id y las columnas de auditoría en una sola sentencia.
func (r *GroupRepo) SwapOwner(groupID, newOwnerID, changedBy string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE groups SET owner_id = $2, updated_by = $3, updated_at = now() WHERE id = $1`,
		groupID, newOwnerID, changedBy)
	if err != nil {
		return 0, fmt.Errorf("swap group owner: %w", err)
	}
	return cmd.RowsAffected(), nil
}
