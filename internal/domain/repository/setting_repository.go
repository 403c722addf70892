package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// SettingRepository lee la configuración persistida en la tabla settings.
// La escritura ocurre fuera de este API (panel de plataforma).
type SettingRepository interface {
	All() ([]entity.Setting, error)
	// GetBool devuelve nil cuando la clave no tiene fila (el caller decide el default).
	GetBool(key string) (*bool, error)
}
