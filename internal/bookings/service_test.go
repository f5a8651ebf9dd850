package bookings

import (
	"context"
	"testing"

	"stagepass/internal/layouts"
	"stagepass/internal/selection"
	"stagepass/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn func(ctx context.Context, booking *Booking) error
}

func (m *mockRepository) CreateWithSeatReservation(ctx context.Context, booking *Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	booking.ID = uuid.New()
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return nil, ErrBookingNotFound
}

func (m *mockRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	return nil, nil
}

func (m *mockRepository) GetPendingPayments(ctx context.Context) ([]Booking, error) { return nil, nil }
func (m *mockRepository) SetUTR(ctx context.Context, id uuid.UUID, utr string) error {
	return nil
}
func (m *mockRepository) MarkConfirmed(ctx context.Context, id uuid.UUID, utr string) error {
	return nil
}
func (m *mockRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error { return nil }

type memSessionStore struct {
	sessions map[string]Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]Session)}
}

func (m *memSessionStore) Save(ctx context.Context, session *Session) error {
	m.sessions[session.ID] = *session
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (m *memSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type mockLayoutProvider struct {
	layout *layouts.SeatLayout
	err    error
}

func (m *mockLayoutProvider) GetLayout(ctx context.Context, eventID string) (*layouts.SeatLayout, error) {
	return m.layout, m.err
}

type mockCategoryDirectory struct {
	lookupFn func(name string) (float64, bool, error)
}

func (m *mockCategoryDirectory) LookupCategory(ctx context.Context, name string) (float64, bool, error) {
	if m.lookupFn != nil {
		return m.lookupFn(name)
	}
	return 2000, true, nil
}

type mockArmer struct {
	armed []string
}

func (m *mockArmer) Arm(ctx context.Context, bookingID string) error {
	m.armed = append(m.armed, bookingID)
	return nil
}

func flowLayout() *layouts.SeatLayout {
	return &layouts.SeatLayout{
		Venue: "Flow Hall",
		Seats: []layouts.Seat{
			{ID: "A1", Row: "A", Number: 1, Status: layouts.SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "A2", Row: "A", Number: 2, Status: layouts.SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "A3", Row: "A", Number: 3, Status: layouts.SeatAvailable, Category: "Premium", Price: 2000},
			{ID: "B1", Row: "B", Number: 1, Status: layouts.SeatAvailable, Category: "Gold", Price: 1000},
		},
	}
}

func flowConfig() config.BookingConfig {
	return config.BookingConfig{
		FeeRate:            0.03,
		MaxSeatsPerBooking: 10,
	}
}

type flowFixture struct {
	service Service
	repo    *mockRepository
	store   *memSessionStore
	armer   *mockArmer
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()
	repo := &mockRepository{}
	store := newMemSessionStore()
	armer := &mockArmer{}
	svc := NewService(repo, store,
		&mockLayoutProvider{layout: flowLayout()},
		&mockCategoryDirectory{},
		armer,
		flowConfig(),
	)
	return &flowFixture{service: svc, repo: repo, store: store, armer: armer}
}

func startFlow(t *testing.T, f *flowFixture, userID string) *Session {
	t.Helper()
	session, err := f.service.StartSession(context.Background(), uuid.NewString(), userID)
	require.NoError(t, err)
	return session
}

func TestStartSession(t *testing.T) {
	f := newFlowFixture(t)

	session := startFlow(t, f, "")

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, StepCategorySelection, session.Step)
	assert.Equal(t, 10, session.MaxSeats)
	assert.Empty(t, session.UserID)
}

func TestSelectCategoryAdvancesStep(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	updated, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)

	assert.Equal(t, StepSeatSelection, updated.Step)
	assert.Equal(t, "Premium", updated.ActiveCategory)
}

func TestSelectCategoryClosedCategory(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, newMemSessionStore(),
		&mockLayoutProvider{layout: flowLayout()},
		&mockCategoryDirectory{lookupFn: func(name string) (float64, bool, error) {
			return 2000, false, nil
		}},
		&mockArmer{},
		flowConfig(),
	)

	session, err := svc.StartSession(context.Background(), uuid.NewString(), "")
	require.NoError(t, err)

	_, err = svc.SelectCategory(context.Background(), session.ID, "Premium")
	assert.ErrorIs(t, err, ErrCategoryUnavailable)
}

func TestSwitchingCategoryResetsSelection(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	_, err = f.service.ToggleSeat(context.Background(), session.ID, "A1")
	require.NoError(t, err)

	updated, err := f.service.SelectCategory(context.Background(), session.ID, "Gold")
	require.NoError(t, err)
	assert.Empty(t, updated.SelectedSeats)

	// Reselecting the same category keeps the selection
	_, err = f.service.ToggleSeat(context.Background(), session.ID, "B1")
	require.NoError(t, err)
	updated, err = f.service.SelectCategory(context.Background(), session.ID, "Gold")
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, updated.SelectedSeats)
}

func TestToggleSeatRequiresSeatSelectionStep(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.ToggleSeat(context.Background(), session.ID, "A1")
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestToggleSeatCategoryMismatch(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)

	_, err = f.service.ToggleSeat(context.Background(), session.ID, "B1")
	assert.ErrorIs(t, err, selection.ErrCategoryMismatch)
}

func TestBackPreservesSelection(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	_, err = f.service.ToggleSeat(context.Background(), session.ID, "A1")
	require.NoError(t, err)

	updated, err := f.service.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCategorySelection, updated.Step)
	assert.Equal(t, []string{"A1"}, updated.SelectedSeats)
}

func TestProceedToPaymentRequiresSeats(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)

	_, _, err = f.service.ProceedToPayment(context.Background(), session.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrNoSeatsSelected)
}

func TestProceedToPaymentRequiresAuth(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	_, err = f.service.ToggleSeat(context.Background(), session.ID, "A1")
	require.NoError(t, err)

	_, _, err = f.service.ProceedToPayment(context.Background(), session.ID, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestProceedToPaymentComputesTotals(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")
	userID := uuid.NewString()

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	for _, seatID := range []string{"A1", "A2", "A3"} {
		_, err = f.service.ToggleSeat(context.Background(), session.ID, seatID)
		require.NoError(t, err)
	}

	updated, totals, err := f.service.ProceedToPayment(context.Background(), session.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, StepPayment, updated.Step)
	assert.Equal(t, userID, updated.UserID)
	assert.Equal(t, 6000.0, totals.Subtotal)
	assert.Equal(t, 180.0, totals.Fee)
	assert.Equal(t, 6180.0, totals.Total)
}

func TestSubmitCreatesBookingAndArmsCountdowns(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")
	userID := uuid.NewString()

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	for _, seatID := range []string{"A1", "A2", "A3"} {
		_, err = f.service.ToggleSeat(context.Background(), session.ID, seatID)
		require.NoError(t, err)
	}
	_, _, err = f.service.ProceedToPayment(context.Background(), session.ID, userID)
	require.NoError(t, err)

	booking, err := f.service.Submit(context.Background(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, userID, booking.UserID.String())
	assert.ElementsMatch(t, []string{"A1", "A2", "A3"}, []string(booking.SeatNumbers))
	assert.Equal(t, 6180.0, booking.TotalAmount)
	assert.Equal(t, PaymentPending, booking.PaymentStatus)
	assert.Equal(t, BookingPending, booking.BookingStatus)
	assert.Regexp(t, `^SP-\d{8}-[A-Z]{6}$`, booking.BookingRef)

	require.Len(t, f.armer.armed, 1)
	assert.Equal(t, booking.ID.String(), f.armer.armed[0])

	final, err := f.service.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepDone, final.Step)
	assert.Equal(t, booking.ID.String(), final.BookingID)
}

func TestSubmitRequiresPaymentStep(t *testing.T) {
	f := newFlowFixture(t)
	session := startFlow(t, f, "")

	_, err := f.service.Submit(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestSubmitPropagatesSeatConflict(t *testing.T) {
	f := newFlowFixture(t)
	f.repo.createFn = func(ctx context.Context, booking *Booking) error {
		return &SeatsUnavailableError{Seats: []string{"A1"}}
	}
	session := startFlow(t, f, "")

	_, err := f.service.SelectCategory(context.Background(), session.ID, "Premium")
	require.NoError(t, err)
	_, err = f.service.ToggleSeat(context.Background(), session.ID, "A1")
	require.NoError(t, err)
	_, _, err = f.service.ProceedToPayment(context.Background(), session.ID, uuid.NewString())
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), session.ID)

	var unavailable *SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"A1"}, unavailable.Seats)
}

func TestGetSessionUnknownID(t *testing.T) {
	f := newFlowFixture(t)

	_, err := f.service.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
