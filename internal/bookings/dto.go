package bookings

// StartSessionRequest opens a booking session for one event.
type StartSessionRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
}

// SelectCategoryRequest picks the active seat category for the session.
type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}
