package dto

// PairPayload un par producto↔opción en requests y respuestas.
type PairPayload struct {
	OptionProductID string `json:"optionProductId"`
	IsRequired      bool   `json:"isRequired"`
	UnitsCount      *int   `json:"unitsCount"`
}

// PairsRequest body de create/update/delete de pares. En delete solo se usan
// los optionProductId.
type PairsRequest struct {
	MainProductID string        `json:"mainProductId"`
	Pairs         []PairPayload `json:"pairs"`
	RequestedBy   string        `json:"requestedBy"`
}

// PairsReadRequest body de read de pares.
type PairsReadRequest struct {
	MainProductID string `json:"mainProductId"`
}

// PairsResponse resultado de una operación sobre pares.
type PairsResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Pairs        []PairPayload `json:"pairs,omitempty"`
	AddedCount   int           `json:"addedCount"`
	RemovedCount int           `json:"removedCount"`
	ChangedCount int           `json:"changedCount"`
}
