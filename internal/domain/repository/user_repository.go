package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// FilterExisting devuelve el subconjunto de ids que existen en la tabla.
	FilterExisting(ids []string) ([]string, error)
	// AccountStatuses devuelve el account_status de cada id existente.
	AccountStatuses(ids []string) (map[string]string, error)
	// Search busca por username, email o nombre con ILIKE '%query%'.
	Search(query string, limit int) ([]*entity.User, int, error)
}
