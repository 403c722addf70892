package dto

// SearchUsersRequest parámetros de búsqueda de usuarios.
type SearchUsersRequest struct {
	Query string `query:"query"`
	Limit int    `query:"limit"`
}

// ClampLimit aplica el default 20 y el rango 1..100.
func (r *SearchUsersRequest) ClampLimit() {
	if r.Limit <= 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// UserSearchItem fila del resultado de búsqueda.
type UserSearchItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

// SearchUsersResponse respuesta de búsqueda.
type SearchUsersResponse struct {
	Success bool             `json:"success"`
	Items   []UserSearchItem `json:"items"`
	Total   int              `json:"total"`
}

// AddToGroupsRequest body de POST /users/:userId/add-to-groups.
type AddToGroupsRequest struct {
	GroupIDs []string `json:"groupIds"`
	AddedBy  string   `json:"addedBy"`
}
