package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// ColumnValue es un par (columna, valor) para updates parciales: el caso de
// uso declara solo las columnas presentes en el request y la infraestructura
// las reduce a un único UPDATE parametrizado. Value nil escribe NULL.
type ColumnValue struct {
	Column string
	Value  any
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, int, error)
	FilterExisting(ids []string) ([]string, error)
	// CodeOrKeyTaken verifica unicidad case-insensitive de code y translation_key.
	CodeOrKeyTaken(code, translationKey string) (codeTaken, keyTaken bool, err error)
	// UpdateColumns aplica un update parcial y estampa updated_by/updated_at.
	// Devuelve las filas afectadas.
	UpdateColumns(id, updatedBy string, cols []ColumnValue) (int64, error)
	// Delete borra el producto; traducciones y relaciones caen por cascade.
	Delete(id string) (int64, error)

	Translations(productID string) ([]entity.ProductTranslation, error)
	InsertTranslation(tr *entity.ProductTranslation) error

	// OwnerID devuelve el usuario con role_type='owner' ("" si no hay).
	OwnerID(productID string) (string, error)
	InsertUserRelation(productID, userID, roleType string) error
	InsertGroupRelation(productID, groupID, roleType string) error
	// UpdateOwnerRow cambia el user_id de la fila owner. Devuelve filas afectadas.
	UpdateOwnerRow(productID, newOwnerID string) (int64, error)
	// StampUpdated actualiza updated_by/updated_at del producto.
	StampUpdated(productID, updatedBy string) error

	// SetPublished fija la bandera derivada is_published.
	SetPublished(productID string, published bool) error
}
