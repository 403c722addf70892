package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// GroupRepository define el puerto de persistencia para Group (DIP).
type GroupRepository interface {
	Create(group *entity.Group) error
	GetByID(id string) (*entity.Group, error)
	List(limit, offset int) ([]*entity.Group, error)
	FilterExisting(ids []string) ([]string, error)
	// SwapOwner actualiza owner_id y las columnas de auditoría en una sola
	// sentencia. Devuelve las filas afectadas.
	SwapOwner(groupID, newOwnerID, changedBy string) (int64, error)
}

// GroupMemberRepository opera las filas de membresía grupo↔usuario.
// Se usa tanto con el pool como atado a una transacción.
type GroupMemberRepository interface {
	ActiveUserIDs(groupID string) ([]string, error)
	ActiveGroupIDs(userID string) ([]string, error)
	Insert(member *entity.GroupMember) error
}
