package bookings

// PaymentStatus tracks the payment leg of a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Status tracks the booking itself.
type Status string

const (
	BookingPending   Status = "pending"
	BookingConfirmed Status = "confirmed"
	BookingCancelled Status = "cancelled"
)

// IsTerminal reports whether the booking can no longer change state.
func (s Status) IsTerminal() bool {
	return s == BookingConfirmed || s == BookingCancelled
}

// Step is the position of a booking session in the checkout flow.
type Step string

const (
	StepCategorySelection Step = "category_selection"
	StepSeatSelection     Step = "seat_selection"
	StepPayment           Step = "payment"
	StepDone              Step = "done"
)
