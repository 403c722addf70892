package repository

// AccessRepository responde la pregunta de acceso con scope "own": el usuario
// es owner del producto o pertenece (activo) a un grupo vinculado al producto
// como owner o specialist.
type AccessRepository interface {
	CanAccessProduct(userID, productID string) (bool, error)
}
