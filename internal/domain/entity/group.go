package entity

import "time"

// Estados válidos para Group.
const (
	GroupActive   = "active"
	GroupArchived = "archived"
)

// Group representa un grupo de especialistas con un único owner.
type Group struct {
	ID        string
	Name      string
	OwnerID   string
	Status    string // active, archived
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupMember es la fila de membresía grupo↔usuario.
// Única por (GroupID, UserID); la baja es lógica vía IsActive.
type GroupMember struct {
	GroupID  string
	UserID   string
	IsActive bool
	JoinedAt time.Time
	AddedBy  string
}
