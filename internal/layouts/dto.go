package layouts

// SaveLayoutRequest replaces an event's full seat layout.
type SaveLayoutRequest struct {
	Venue    string `json:"venue" binding:"required"`
	Seats    []Seat `json:"seats" binding:"required,min=1,dive"`
	ImageURL string `json:"image_url"`
}

// AddRowRequest appends a row of seats to the layout.
type AddRowRequest struct {
	Row      string `json:"row" binding:"required,min=1,max=3"`
	Seats    int    `json:"seats" binding:"required,min=1,max=100"`
	Category string `json:"category" binding:"required"`
}

// SetRowCategoryRequest reassigns every seat in a row to a category.
type SetRowCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// AttachImageRequest stores the venue reference image URL.
type AttachImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}
