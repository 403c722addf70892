package dto

// UpdateSectionsPublishRequest body de PUT update-sections-publish: full
// replace, lista vacía = despublicar de todas las secciones.
type UpdateSectionsPublishRequest struct {
	ProductID  string   `json:"productId"`
	SectionIDs []string `json:"sectionIds"`
	UpdatedBy  string   `json:"updatedBy"`
}

// PublishResponse resultado de la publicación en secciones.
type PublishResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AddedCount   int    `json:"addedCount"`
	RemovedCount int    `json:"removedCount"`
	IsPublished  bool   `json:"isPublished"`
}

// SectionItem sección del catálogo para selectores del UI.
type SectionItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SectionListResponse listado de secciones.
type SectionListResponse struct {
	Success bool          `json:"success"`
	Items   []SectionItem `json:"items"`
}
