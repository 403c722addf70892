package entity

import "time"

// Límites de validación para pares producto↔opción.
const (
	MaxPairsPerRequest = 200
	MinUnitsCount      = 1
	MaxUnitsCount      = 100
)

// ProductPair vincula un producto principal con un producto opción.
// UnitsCount es obligatorio (1..100) cuando IsRequired es true y debe ser
// NULL cuando es false. Un producto nunca se empareja consigo mismo.
type ProductPair struct {
	MainProductID   string
	OptionProductID string
	IsRequired      bool
	UnitsCount      *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AttrsEqual compara los atributos del par (no las claves).
func (p ProductPair) AttrsEqual(other ProductPair) bool {
	if p.IsRequired != other.IsRequired {
		return false
	}
	if (p.UnitsCount == nil) != (other.UnitsCount == nil) {
		return false
	}
	return p.UnitsCount == nil || *p.UnitsCount == *other.UnitsCount
}
