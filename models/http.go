package models

// InitRequest seeds the server-provided baseline of an entity, as rendered by
// the view that first shows it.
type InitRequest struct {
	IsLiked bool  `json:"is_liked"`
	Count   int64 `json:"count"`
}

// EntitiesResponse lists the states of all tracked entities.
type EntitiesResponse struct {
	Entities []ToggleState `json:"entities"`
}
