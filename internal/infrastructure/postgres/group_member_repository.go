package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.GroupMemberRepository = (*GroupMemberRepo)(nil)

// GroupMemberRepo implementación del puerto GroupMemberRepository sobre PostgreSQL.
type GroupMemberRepo struct {
	q Querier
}

// NewGroupMemberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupMemberRepository(q Querier) *GroupMemberRepo {
	return &GroupMemberRepo{q: q}
}

// ActiveUserIDs devuelve los user_id con membresía activa en el grupo.
func (r *GroupMemberRepo) ActiveUserIDs(groupID string) ([]string, error) {
	return r.listIDs(
		`SELECT user_id FROM group_members WHERE group_id = $1 AND is_active`, groupID)
}

// ActiveGroupIDs devuelve los group_id donde el usuario tiene membresía activa.
func (r *GroupMemberRepo) ActiveGroupIDs(userID string) ([]string, error) {
	return r.listIDs(
		`SELECT group_id FROM group_members WHERE user_id = $1 AND is_active`, userID)
}

func (r *GroupMemberRepo) listIDs(query, arg string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan membership id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Insert crea la fila de membresía. Reactiva una fila inactiva si ya existe
// el par (violación de unicidad resuelta por upsert); una carrera entre dos
// requests por el mismo par la decide el constraint, no la aplicación.
func (r *GroupMemberRepo) Insert(member *entity.GroupMember) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO group_members (group_id, user_id, is_active, joined_at, added_by)
		 VALUES ($1, $2, true, $3, $4)
		 ON CONFLICT (group_id, user_id)
		 DO UPDATE SET is_active = true, joined_at = EXCLUDED.joined_at, added_by = EXCLUDED.added_by
		 WHERE NOT group_members.is_active`,
		member.GroupID, member.UserID, member.JoinedAt, member.AddedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(domain.KindUnique, "el usuario ya es miembro del grupo")
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}
