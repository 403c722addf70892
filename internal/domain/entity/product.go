package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product. La columna status_code es un enum cerrado de
// PostgreSQL: el tipo de la base valida la etiqueta, no la aplicación.
const (
	ProductDraft        = "draft"
	ProductActive       = "active"
	ProductDiscontinued = "discontinued"
	ProductArchived     = "archived"
)

// Tipos de rol en las relaciones producto↔usuario y producto↔grupo.
const (
	RelationOwner      = "owner"
	RelationSpecialist = "specialist"
)

// Product representa un producto del catálogo administrado por el back-office.
// IsPublished es una bandera derivada: true si y solo si existe al menos una
// publicación en una sección del catálogo; se recalcula antes de cada commit.
type Product struct {
	ID             string
	Code           string // único, case-insensitive
	TranslationKey string // único, case-insensitive
	StatusCode     string
	IsPublished    bool
	Price          *decimal.Decimal // precio base opcional
	CreatedAt      time.Time
	CreatedBy      string
	UpdatedAt      time.Time
	UpdatedBy      string
}

// ProductTranslation es la traducción de un producto para un idioma.
// Una traducción está completa cuando Name y FullDescription no están vacíos.
type ProductTranslation struct {
	ProductID        string
	Lang             string
	Name             string
	ShortDescription string
	FullDescription  string
	TechSpecs        string
}

// Complete informa si la traducción cumple el mínimo para publicarse.
func (t ProductTranslation) Complete() bool {
	return t.Name != "" && t.FullDescription != ""
}
