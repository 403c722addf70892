package dto

// RegionBindingPayload binding producto↔región. Los nombres de campo siguen
// el contrato documentado del endpoint (snake_case).
type RegionBindingPayload struct {
	RegionID   string  `json:"region_id"`
	CategoryID *string `json:"category_id"`
}

// UpdateRegionsRequest body de PUT regions: full replace, lista vacía = quitar todas.
type UpdateRegionsRequest struct {
	Regions   []RegionBindingPayload `json:"regions"`
	UpdatedBy string                 `json:"updatedBy"`
}

// RegionsResponse bindings vigentes del producto.
type RegionsResponse struct {
	Success      bool                   `json:"success"`
	Regions      []RegionBindingPayload `json:"regions"`
	AddedCount   int                    `json:"addedCount"`
	RemovedCount int                    `json:"removedCount"`
	ChangedCount int                    `json:"changedCount"`
}

// RegionItem región de referencia para selectores del UI.
type RegionItem struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// RegionListResponse listado de regiones.
type RegionListResponse struct {
	Success bool         `json:"success"`
	Items   []RegionItem `json:"items"`
}
