package payments

import (
	"context"
	"testing"
	"time"

	"stagepass/internal/bookings"
	"stagepass/internal/notifications"
	"stagepass/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockBookingStore struct {
	records map[uuid.UUID]*bookings.Booking
}

func newMockBookingStore(records ...*bookings.Booking) *mockBookingStore {
	store := &mockBookingStore{records: make(map[uuid.UUID]*bookings.Booking)}
	for _, record := range records {
		store.records[record.ID] = record
	}
	return store
}

func (m *mockBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (m *mockBookingStore) GetPendingPayments(ctx context.Context) ([]bookings.Booking, error) {
	var pending []bookings.Booking
	for _, record := range m.records {
		if record.PaymentStatus == bookings.PaymentPending && record.UTRNumber != "" {
			pending = append(pending, *record)
		}
	}
	return pending, nil
}

func (m *mockBookingStore) SetUTR(ctx context.Context, id uuid.UUID, utr string) error {
	m.records[id].UTRNumber = utr
	return nil
}

func (m *mockBookingStore) MarkConfirmed(ctx context.Context, id uuid.UUID, utr string) error {
	record := m.records[id]
	record.PaymentStatus = bookings.PaymentCompleted
	record.BookingStatus = bookings.BookingConfirmed
	record.UTRNumber = utr
	now := time.Now()
	record.ConfirmedAt = &now
	return nil
}

func (m *mockBookingStore) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	record := m.records[id]
	record.PaymentStatus = bookings.PaymentFailed
	record.BookingStatus = bookings.BookingCancelled
	now := time.Now()
	record.CancelledAt = &now
	return nil
}

type mockCountdowns struct {
	paymentExpired   bool
	paymentRemaining time.Duration
	warningExpired   bool
	warningRemaining time.Duration
	disarmed         []string
}

func (m *mockCountdowns) PaymentRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error) {
	return m.paymentRemaining, m.paymentExpired, nil
}

func (m *mockCountdowns) HoldWarningRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error) {
	return m.warningRemaining, m.warningExpired, nil
}

func (m *mockCountdowns) Disarm(ctx context.Context, bookingID string) error {
	m.disarmed = append(m.disarmed, bookingID)
	return nil
}

type mockPublisher struct {
	events []notifications.Event
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, event notifications.Event) error {
	m.events = append(m.events, event)
	return nil
}

func pendingBooking() *bookings.Booking {
	return &bookings.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		EventID:       uuid.New(),
		SeatNumbers:   bookings.SeatNumberList{"A1", "A2"},
		TotalAmount:   6180,
		PaymentStatus: bookings.PaymentPending,
		BookingStatus: bookings.BookingPending,
		BookingRef:    "SP-20260830-KQZMWR",
	}
}

func paymentConfig(autoConfirm bool) config.PaymentConfig {
	return config.PaymentConfig{
		UPIID:       "stagepass@upi",
		PayeeName:   "StagePass Tickets",
		AutoConfirm: autoConfirm,
	}
}

type paymentFixture struct {
	service    Service
	store      *mockBookingStore
	countdowns *mockCountdowns
	publisher  *mockPublisher
	booking    *bookings.Booking
}

func newPaymentFixture(t *testing.T, autoConfirm bool) *paymentFixture {
	t.Helper()
	booking := pendingBooking()
	store := newMockBookingStore(booking)
	countdowns := &mockCountdowns{paymentRemaining: 900 * time.Second, warningRemaining: 240 * time.Second}
	publisher := &mockPublisher{}
	svc := NewService(store, countdowns, publisher, paymentConfig(autoConfirm))
	return &paymentFixture{service: svc, store: store, countdowns: countdowns, publisher: publisher, booking: booking}
}

func TestInstructions(t *testing.T) {
	f := newPaymentFixture(t, false)

	view, err := f.service.Instructions(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false)
	require.NoError(t, err)

	assert.Equal(t, "stagepass@upi", view.UPIID)
	assert.Equal(t, 6180.0, view.Amount)
	assert.Contains(t, view.Deeplink, "am=6180.00")
	assert.Equal(t, 900, view.PaymentRemainingSec)
	assert.Equal(t, 240, view.HoldWarningRemaining)
	assert.True(t, view.HoldWarningActive)
}

func TestInstructionsOwnerOnly(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.Instructions(context.Background(), f.booking.ID.String(), uuid.NewString(), false)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestInstructionsAdminBypassesOwnership(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.Instructions(context.Background(), f.booking.ID.String(), uuid.NewString(), true)
	assert.NoError(t, err)
}

func TestInstructionsExpiredWindowCancelsBooking(t *testing.T) {
	f := newPaymentFixture(t, false)
	f.countdowns.paymentExpired = true

	_, err := f.service.Instructions(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false)
	assert.ErrorIs(t, err, ErrPaymentWindowExpired)

	cancelled, _ := f.store.GetByID(context.Background(), f.booking.ID)
	assert.Equal(t, bookings.BookingCancelled, cancelled.BookingStatus)
	assert.Equal(t, bookings.PaymentFailed, cancelled.PaymentStatus)
	assert.Contains(t, f.countdowns.disarmed, f.booking.ID.String())
}

func TestSubmitUTRInvalidFormat(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "short")
	assert.ErrorIs(t, err, ErrUTRFormat)
}

func TestSubmitUTRQueuesForReview(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, " utr123456789 ")
	require.NoError(t, err)

	assert.Equal(t, "UTR123456789", booking.UTRNumber)
	assert.Equal(t, bookings.PaymentPending, booking.PaymentStatus)

	pending, err := f.service.PendingPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "utr_submitted", f.publisher.events[0].Type)
}

func TestSubmitUTRAutoConfirm(t *testing.T) {
	f := newPaymentFixture(t, true)

	booking, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "123456789012")
	require.NoError(t, err)

	assert.Equal(t, bookings.BookingConfirmed, booking.BookingStatus)
	assert.Equal(t, bookings.PaymentCompleted, booking.PaymentStatus)
	assert.NotNil(t, booking.ConfirmedAt)
	assert.Contains(t, f.countdowns.disarmed, f.booking.ID.String())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "payment_confirmed", f.publisher.events[0].Type)
}

func TestSubmitUTRAfterExpiryLocked(t *testing.T) {
	f := newPaymentFixture(t, false)
	f.countdowns.paymentExpired = true

	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "123456789012")
	assert.ErrorIs(t, err, ErrPaymentWindowExpired)

	cancelled, _ := f.store.GetByID(context.Background(), f.booking.ID)
	assert.Equal(t, bookings.BookingCancelled, cancelled.BookingStatus)
}

func TestSubmitUTRAfterSettlement(t *testing.T) {
	f := newPaymentFixture(t, false)
	require.NoError(t, f.store.MarkConfirmed(context.Background(), f.booking.ID, "123456789012"))

	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "999999999999")
	assert.ErrorIs(t, err, ErrPaymentAlreadySettled)
}

func TestApprove(t *testing.T) {
	f := newPaymentFixture(t, false)
	adminID := uuid.NewString()
	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "123456789012")
	require.NoError(t, err)

	booking, err := f.service.Approve(context.Background(), f.booking.ID.String(), adminID)
	require.NoError(t, err)

	assert.Equal(t, bookings.BookingConfirmed, booking.BookingStatus)
	assert.Equal(t, "123456789012", booking.UTRNumber)
	assert.Contains(t, f.countdowns.disarmed, f.booking.ID.String())
}

func TestApproveIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t, false)
	adminID := uuid.NewString()
	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "123456789012")
	require.NoError(t, err)

	first, err := f.service.Approve(context.Background(), f.booking.ID.String(), adminID)
	require.NoError(t, err)
	published := len(f.publisher.events)

	second, err := f.service.Approve(context.Background(), f.booking.ID.String(), adminID)
	require.NoError(t, err)

	assert.Equal(t, first.BookingStatus, second.BookingStatus)
	assert.Len(t, f.publisher.events, published, "repeat approve must not republish")
}

func TestApproveWithoutUTR(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.Approve(context.Background(), f.booking.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUTRMissing)
}

func TestApproveCancelledBooking(t *testing.T) {
	f := newPaymentFixture(t, false)
	require.NoError(t, f.store.MarkCancelled(context.Background(), f.booking.ID))

	_, err := f.service.Approve(context.Background(), f.booking.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, ErrPaymentAlreadySettled)
}

func TestReject(t *testing.T) {
	f := newPaymentFixture(t, false)
	_, err := f.service.SubmitUTR(context.Background(), f.booking.ID.String(), f.booking.UserID.String(), false, "123456789012")
	require.NoError(t, err)

	booking, err := f.service.Reject(context.Background(), f.booking.ID.String(), uuid.NewString(), "amount mismatch")
	require.NoError(t, err)

	assert.Equal(t, bookings.BookingCancelled, booking.BookingStatus)
	assert.Equal(t, bookings.PaymentFailed, booking.PaymentStatus)
	assert.Contains(t, f.countdowns.disarmed, f.booking.ID.String())
}

func TestRejectIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.Reject(context.Background(), f.booking.ID.String(), uuid.NewString(), "amount mismatch")
	require.NoError(t, err)
	published := len(f.publisher.events)

	booking, err := f.service.Reject(context.Background(), f.booking.ID.String(), uuid.NewString(), "amount mismatch")
	require.NoError(t, err)

	assert.Equal(t, bookings.BookingCancelled, booking.BookingStatus)
	assert.Len(t, f.publisher.events, published, "repeat reject must not republish")
}

func TestRejectConfirmedBooking(t *testing.T) {
	f := newPaymentFixture(t, false)
	require.NoError(t, f.store.MarkConfirmed(context.Background(), f.booking.ID, "123456789012"))

	_, err := f.service.Reject(context.Background(), f.booking.ID.String(), uuid.NewString(), "late")
	assert.ErrorIs(t, err, ErrPaymentAlreadySettled)
}

func TestUnknownBooking(t *testing.T) {
	f := newPaymentFixture(t, false)

	_, err := f.service.Instructions(context.Background(), uuid.NewString(), uuid.NewString(), true)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
