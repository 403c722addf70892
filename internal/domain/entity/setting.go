package entity

// Claves de configuración operadas desde el back-office.
const (
	// SettingAddOnlyActiveUsers controla si solo usuarios con cuenta activa
	// pueden añadirse a grupos. Sin fila en la tabla se asume true.
	SettingAddOnlyActiveUsers = "groups.add_only_active_users"
)

// Setting es un par clave/valor de configuración persistido.
type Setting struct {
	Key   string
	Value string
}
