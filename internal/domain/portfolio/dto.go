package portfolio

type AddItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,max=500"`
}
