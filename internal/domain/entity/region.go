package entity

// Region es una región de venta (referencia, administrada fuera de este API).
type Region struct {
	ID   string
	Code string
	Name string
}

// ProductRegion vincula un producto con una región de venta, con una
// categoría imponible opcional. Única por (ProductID, RegionID).
type ProductRegion struct {
	ProductID  string
	RegionID   string
	CategoryID *string
}

// AttrsEqual compara la categoría del binding (no las claves).
func (pr ProductRegion) AttrsEqual(other ProductRegion) bool {
	if (pr.CategoryID == nil) != (other.CategoryID == nil) {
		return false
	}
	return pr.CategoryID == nil || *pr.CategoryID == *other.CategoryID
}
