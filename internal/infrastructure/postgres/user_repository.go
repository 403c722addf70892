package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, full_name, password_hash, role, account_status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID. Devuelve nil sin error si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username exacto.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail obtiene un usuario por email (login).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Role, &u.AccountStatus, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// FilterExisting devuelve el subconjunto de ids que existen en users.
func (r *UserRepo) FilterExisting(ids []string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM users WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("filter users: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// AccountStatuses devuelve el account_status de cada id existente.
func (r *UserRepo) AccountStatuses(ids []string) (map[string]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, account_status FROM users WHERE id = ANY($1)`, stringSliceParam(ids))
	if err != nil {
		return nil, fmt.Errorf("account statuses: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string, len(ids))
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("scan account status: %w", err)
		}
		out[id] = status
	}
	return out, rows.Err()
}

// Search busca usuarios por username, email o nombre con ILIKE '%query%'.
// Devuelve además el total sin límite para el campo total de la respuesta.
func (r *UserRepo) Search(query string, limit int) ([]*entity.User, int, error) {
	pattern := "%" + query + "%"
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM users
		 WHERE username ILIKE $1 OR email ILIKE $1 OR full_name ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT `+userColumns+` FROM users
		 WHERE username ILIKE $1 OR email ILIKE $1 OR full_name ILIKE $1
		 ORDER BY username ASC LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
			&u.Role, &u.AccountStatus, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}
