package dto

import "time"

// CreateGroupRequest body de creación de grupo.
type CreateGroupRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

// GroupResponse representación de un grupo.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupListResponse listado paginado de grupos.
type GroupListResponse struct {
	Success bool            `json:"success"`
	Items   []GroupResponse `json:"items"`
	Page    PageResponse    `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// AddUsersRequest body de POST /groups/:groupId/add-users.
type AddUsersRequest struct {
	UserIDs []string `json:"userIds"`
	AddedBy string   `json:"addedBy"`
}

// MembershipResponse resultado de añadir membresías: count añadidos y mensaje
// que menciona los omitidos cuando el manejo fue parcial.
type MembershipResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ChangeOwnerRequest body de change-owner (producto o grupo). Acepta id o
// username del nuevo owner; con ambos presentes gana el id.
type ChangeOwnerRequest struct {
	NewOwnerID       string `json:"newOwnerId"`
	NewOwnerUsername string `json:"newOwnerUsername"`
	ChangedBy        string `json:"changedBy"`
}

// ChangeOwnerResponse resultado del cambio de owner.
type ChangeOwnerResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	OldOwnerID string `json:"oldOwnerId,omitempty"`
}
