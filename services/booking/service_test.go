package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "gigbook/database/repository/booking"
	providerRepo "gigbook/database/repository/provider"
	ratingRepo "gigbook/database/repository/rating"
	"gigbook/models"
)

// mockBookingRepo reproduces the repository's atomicity contract in memory:
// the overlap check and insert run under one mutex.
type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) CreateWithConflictCheck(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	providerID, _ := b.ProviderRef()
	for _, other := range m.bookings {
		otherID, _ := other.ProviderRef()
		if otherID != providerID || other.Date != b.Date {
			continue
		}
		if other.Status == models.StatusCancelled {
			continue
		}
		// Fixed-width HH:MM strings compare like minutes.
		if b.StartTime < other.EndTime && b.EndTime > other.StartTime {
			return bookingRepo.ErrOverlap
		}
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockBookingRepo) UpdateGuarded(ctx context.Context, b *models.Booking, fromStatus models.BookingStatus, fromPayment models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if cur.Status != fromStatus || cur.PaymentStatus != fromPayment {
		return bookingRepo.ErrStale
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		id, _ := b.ProviderRef()
		if id == providerID && (date == "" || b.Date == date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type mockProviderRepo struct {
	providers map[string]*models.Provider
}

func newMockProviderRepo(providers ...*models.Provider) *mockProviderRepo {
	m := &mockProviderRepo{providers: make(map[string]*models.Provider)}
	for _, p := range providers {
		m.providers[p.ID] = p
	}
	return m
}

func (m *mockProviderRepo) GetByID(id string) (*models.Provider, error) {
	p, ok := m.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProviderRepo) GetAll() ([]models.Provider, error) { return nil, nil }
func (m *mockProviderRepo) Create(p *models.Provider) error {
	m.providers[p.ID] = p
	return nil
}
func (m *mockProviderRepo) Update(p *models.Provider) error {
	m.providers[p.ID] = p
	return nil
}
func (m *mockProviderRepo) Delete(id string) error {
	delete(m.providers, id)
	return nil
}
func (m *mockProviderRepo) SetDayTemplate(providerID string, tpl models.DayTemplate) error {
	return nil
}

type stubRatingService struct {
	added *models.Rating
	err   error
}

func (s *stubRatingService) AddRating(ctx context.Context, actor models.Actor, providerID string, score int, review string) (*models.Rating, ratingRepo.Aggregate, error) {
	if s.err != nil {
		return nil, ratingRepo.Aggregate{}, s.err
	}
	r := &models.Rating{
		ID:         "r1",
		ProviderID: providerID,
		UserID:     actor.UserID,
		Rating:     score,
		Review:     review,
		Date:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	s.added = r
	return r, ratingRepo.Aggregate{AverageRating: float64(score), ReviewCount: 1}, nil
}

func (s *stubRatingService) RemoveRating(ctx context.Context, actor models.Actor, providerID, ratingID string) (ratingRepo.Aggregate, error) {
	return ratingRepo.Aggregate{}, nil
}

func (s *stubRatingService) ListRatings(ctx context.Context, providerID string) ([]models.Rating, error) {
	return nil, nil
}

type stubVerifier struct {
	calls    int
	currency string
	err      error
}

func (v *stubVerifier) VerifyPayment(ctx context.Context, paymentID string, amount float64, currency string) error {
	v.calls++
	v.currency = currency
	return v.err
}

type stubExpiry struct {
	bookingID string
	fireAt    time.Time
}

func (s *stubExpiry) ScheduleExpiry(bookingID string, fireAt time.Time) error {
	s.bookingID = bookingID
	s.fireAt = fireAt
	return nil
}

var (
	testNow    = time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local) // a Monday morning
	client     = models.Actor{UserID: "client-1", Role: models.RoleClient}
	owner      = models.Actor{UserID: "owner-1", Role: models.RoleArtist}
	admin      = models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	stranger   = models.Actor{UserID: "nobody", Role: models.RoleClient}
	testArtist = &models.Provider{
		ID: "a1",
		Profile: models.Profile{
			Name:        "Test Artist",
			Type:        models.ProviderArtist,
			OwnerUserID: "owner-1",
			HourlyRate:  2000,
			Currency:    "USD",
		},
	}
)

func newTestService(repo *mockBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:              repo,
		ProviderRepo:      newMockProviderRepo(testArtist),
		ServiceFeePercent: 5,
		Now:               func() time.Time { return testNow },
	}
}

func createInput() CreateBookingInput {
	return CreateBookingInput{
		ProviderID:   "a1",
		ProviderType: "artist",
		Date:         "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "11:00",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)

	b, err := svc.CreateBooking(context.Background(), client, createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.ClientID != "client-1" || b.ArtistID != "a1" || b.StudioID != "" {
		t.Errorf("booking references wrong parties: %+v", b)
	}
	if b.DurationHours != 2 {
		t.Errorf("DurationHours = %v, want 2", b.DurationHours)
	}
	if b.BaseCost != 4000 || b.ServiceFee != 200 || b.TotalCost != 4200 {
		t.Errorf("cost = %v/%v/%v, want 4000/200/4200", b.BaseCost, b.ServiceFee, b.TotalCost)
	}
	if b.Status != models.StatusPending || b.PaymentStatus != models.PaymentPending {
		t.Errorf("initial state = %s/%s, want pending/pending", b.Status, b.PaymentStatus)
	}

	stored, err := repo.GetByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.TotalCost != 4200 {
		t.Errorf("persisted total = %v, want 4200", stored.TotalCost)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := newTestService(newMockBookingRepo())

	cases := []struct {
		name     string
		mutate   func(*CreateBookingInput)
		wantCode string
	}{
		{"unknown provider type", func(in *CreateBookingInput) { in.ProviderType = "venue" }, CodeInvalidProviderType},
		{"type mismatch", func(in *CreateBookingInput) { in.ProviderType = "studio" }, CodeInvalidProviderType},
		{"bad date", func(in *CreateBookingInput) { in.Date = "03/02/2026" }, CodeInvalidDate},
		{"bad start time", func(in *CreateBookingInput) { in.StartTime = "9am" }, CodeMalformedTime},
		{"bad end time", func(in *CreateBookingInput) { in.EndTime = "26:00" }, CodeMalformedTime},
		{"start equals end", func(in *CreateBookingInput) { in.EndTime = "09:00" }, CodeInvalidInterval},
		{"start after end", func(in *CreateBookingInput) { in.StartTime = "12:00" }, CodeInvalidInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := createInput()
			tc.mutate(&in)
			_, err := svc.CreateBooking(context.Background(), client, in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Code != tc.wantCode {
				t.Fatalf("error code = %s, want %s", verr.Code, tc.wantCode)
			}
		})
	}

	in := createInput()
	in.ProviderID = "missing"
	if _, err := svc.CreateBooking(context.Background(), client, in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown provider, got %v", err)
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, client, createInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	overlapping := createInput()
	overlapping.StartTime = "10:00"
	overlapping.EndTime = "12:00"
	if _, err := svc.CreateBooking(ctx, stranger, overlapping); !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}

	adjacent := createInput()
	adjacent.StartTime = "11:00"
	adjacent.EndTime = "13:00"
	if _, err := svc.CreateBooking(ctx, stranger, adjacent); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}
}

func TestCreateBooking_CancelledDoesNotBlock(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, client, createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, client, b.ID, models.StatusCancelled, "changed plans"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.CreateBooking(ctx, stranger, createInput()); err != nil {
		t.Fatalf("cancelled booking must not hold the slot: %v", err)
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := models.Actor{UserID: "user-" + string(rune('a'+i)), Role: models.RoleClient}
			_, errs[i] = svc.CreateBooking(context.Background(), actor, createInput())
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSlotConflict):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("want exactly one success and one conflict, got %d/%d", ok, conflict)
	}
}

func TestCreateBooking_SchedulesExpiry(t *testing.T) {
	expiry := &stubExpiry{}
	svc := newTestService(newMockBookingRepo())
	svc.Expiry = expiry
	svc.PaymentWindow = 24 * time.Hour

	b, err := svc.CreateBooking(context.Background(), client, createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiry.bookingID != b.ID {
		t.Errorf("expiry scheduled for %q, want %q", expiry.bookingID, b.ID)
	}
	if want := testNow.Add(24 * time.Hour); !expiry.fireAt.Equal(want) {
		t.Errorf("expiry fires at %v, want %v", expiry.fireAt, want)
	}
}

func TestChangeStatus_Flow(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, client, createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusConfirmed, ""); err != nil {
		t.Fatalf("owner confirm failed: %v", err)
	}

	// Booking ends at 11:00 on the test date; at 08:00 it has not elapsed.
	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusCompleted, ""); !errors.Is(err, ErrNotElapsed) {
		t.Fatalf("expected ErrNotElapsed, got %v", err)
	}

	svc.Now = func() time.Time { return testNow.Add(4 * time.Hour) } // 12:00
	updated, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusCompleted, "")
	if err != nil {
		t.Fatalf("completion after elapsed time failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}
}

func TestChangeStatus_AdminCompletesEarly(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusConfirmed, ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, admin, b.ID, models.StatusCompleted, ""); err != nil {
		t.Fatalf("admin override should complete early: %v", err)
	}
}

func TestChangeStatus_IllegalTransitions(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	// pending cannot jump straight to completed.
	_, err := svc.ChangeStatus(ctx, admin, b.ID, models.StatusCompleted, "")
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if terr.From != models.StatusPending || terr.To != models.StatusCompleted {
		t.Fatalf("TransitionError = %+v", terr)
	}

	if _, err := svc.ChangeStatus(ctx, client, b.ID, models.StatusCancelled, "no longer needed"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// cancelled is terminal.
	if _, err := svc.ChangeStatus(ctx, admin, b.ID, models.StatusConfirmed, ""); err == nil {
		t.Fatal("expected error reviving a cancelled booking")
	}
}

func TestChangeStatus_Cancellation(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	if _, err := svc.ChangeStatus(ctx, admin, b.ID, models.StatusCancelled, ""); !errors.Is(err, ErrMissingReason) {
		t.Fatalf("admin cancel without reason: expected ErrMissingReason, got %v", err)
	}

	updated, err := svc.ChangeStatus(ctx, admin, b.ID, models.StatusCancelled, "fraud review")
	if err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if updated.CancellationReason != "fraud review" {
		t.Errorf("CancellationReason = %q", updated.CancellationReason)
	}
	if updated.CancellationDate == nil || !updated.CancellationDate.Equal(testNow) {
		t.Errorf("CancellationDate = %v, want %v", updated.CancellationDate, testNow)
	}
}

func TestChangeStatus_Unauthorized(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	if _, err := svc.ChangeStatus(ctx, stranger, b.ID, models.StatusConfirmed, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestChangeStatus_ProviderActionsOnly(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	// Confirmation is the provider's move, not the client's.
	if _, err := svc.ChangeStatus(ctx, client, b.ID, models.StatusConfirmed, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("client confirm: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusConfirmed, ""); err != nil {
		t.Fatalf("owner confirm failed: %v", err)
	}

	// Same for completion, even after the booked time has elapsed.
	svc.Now = func() time.Time { return testNow.Add(6 * time.Hour) }
	if _, err := svc.ChangeStatus(ctx, client, b.ID, models.StatusCompleted, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("client complete: expected ErrUnauthorized, got %v", err)
	}

	// The client may still cancel their own booking.
	if _, err := svc.ChangeStatus(ctx, client, b.ID, models.StatusCancelled, "can no longer attend"); err != nil {
		t.Fatalf("client cancel failed: %v", err)
	}
}

// staleReadRepo serves reads from a frozen snapshot while writes go against
// the live store, standing in for a concurrent writer that landed between
// this caller's read and write.
type staleReadRepo struct {
	*mockBookingRepo
	snapshot models.Booking
}

func (r *staleReadRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if id == r.snapshot.ID {
		cp := r.snapshot
		return &cp, nil
	}
	return r.mockBookingRepo.GetByID(ctx, id)
}

func TestExpirePending_StaleReadDoesNotClobberPayment(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	snapshot := *b // still pending/pending

	if _, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "mpesa", PaymentID: "tx-1",
	}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	staleSvc := newTestService(repo)
	staleSvc.Repo = &staleReadRepo{mockBookingRepo: repo, snapshot: snapshot}
	if err := staleSvc.ExpirePending(ctx, b.ID); err != nil {
		t.Fatalf("stale expiry should be a no-op, got %v", err)
	}

	got, _ := repo.GetByID(ctx, b.ID)
	if got.Status != models.StatusPending || got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("stale expiry clobbered the booking: %s/%s", got.Status, got.PaymentStatus)
	}
}

func TestChangeStatus_StaleReadConflicts(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	snapshot := *b

	if _, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "mpesa", PaymentID: "tx-1",
	}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	staleSvc := newTestService(repo)
	staleSvc.Repo = &staleReadRepo{mockBookingRepo: repo, snapshot: snapshot}
	if _, err := staleSvc.ChangeStatus(ctx, owner, b.ID, models.StatusConfirmed, ""); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}

	got, _ := repo.GetByID(ctx, b.ID)
	if got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("stale status change clobbered the payment axis: %s", got.PaymentStatus)
	}
}

func TestExpirePending(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	if err := svc.ExpirePending(ctx, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expired, _ := repo.GetByID(ctx, b.ID)
	if expired.Status != models.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", expired.Status)
	}
	if expired.CancellationReason != "payment window elapsed" {
		t.Fatalf("CancellationReason = %q", expired.CancellationReason)
	}

	// A vanished booking is not an error.
	if err := svc.ExpirePending(ctx, "gone"); err != nil {
		t.Fatalf("missing booking should be a no-op: %v", err)
	}
}

func TestExpirePending_SkipsPaid(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	if _, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "mpesa", PaymentID: "tx-1",
	}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	if err := svc.ExpirePending(ctx, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(ctx, b.ID)
	if got.Status != models.StatusPending {
		t.Fatalf("paid booking must not expire, status = %s", got.Status)
	}
}

func TestChangePayment_Flow(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	paid, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "mpesa", PaymentID: "tx-1",
	})
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if paid.PaymentStatus != models.PaymentPaid || paid.PaymentMethod != "mpesa" || paid.PaymentID != "tx-1" {
		t.Fatalf("payment fields = %+v", paid)
	}

	// paid -> refunded is admin-only.
	if _, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{PaymentStatus: "refunded"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("client refund: expected ErrUnauthorized, got %v", err)
	}
	refunded, err := svc.ChangePayment(ctx, admin, b.ID, PaymentInput{PaymentStatus: "refunded"})
	if err != nil {
		t.Fatalf("admin refund failed: %v", err)
	}
	if refunded.PaymentStatus != models.PaymentRefunded {
		t.Fatalf("PaymentStatus = %s, want refunded", refunded.PaymentStatus)
	}

	// refunded -> paid never happens.
	_, err = svc.ChangePayment(ctx, admin, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "mpesa", PaymentID: "tx-2",
	})
	var perr *PaymentTransitionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PaymentTransitionError, got %v", err)
	}
}

func TestChangePayment_Validation(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	var verr *ValidationError
	_, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{PaymentStatus: "settled"})
	if !errors.As(err, &verr) || verr.Code != CodeInvalidPaymentStatus {
		t.Errorf("unknown payment status: expected %s ValidationError, got %v", CodeInvalidPaymentStatus, err)
	}
	_, err = svc.ChangePayment(ctx, client, b.ID, PaymentInput{PaymentStatus: "paid"})
	if !errors.As(err, &verr) || verr.Code != CodeMissingPaymentDetails {
		t.Errorf("missing method and id: expected %s ValidationError, got %v", CodeMissingPaymentDetails, err)
	}
	// The provider's owner cannot mark the client's booking paid.
	if _, err := svc.ChangePayment(ctx, owner, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "cash", PaymentID: "tx-1",
	}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("owner pay: expected ErrUnauthorized, got %v", err)
	}
}

func TestChangePayment_CardVerification(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	verifier := &stubVerifier{}
	svc.Verifier = verifier
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	if _, err := svc.ChangePayment(ctx, client, b.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "card", PaymentID: "pi_1",
	}); err != nil {
		t.Fatalf("card payment failed: %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier called %d times, want 1", verifier.calls)
	}
	if verifier.currency != "USD" {
		t.Fatalf("verified currency %q, want USD", verifier.currency)
	}

	b2, _ := svc.CreateBooking(ctx, client, CreateBookingInput{
		ProviderID: "a1", ProviderType: "artist", Date: "2026-03-03",
		StartTime: "09:00", EndTime: "10:00",
	})
	verifier.err = errors.New("intent not settled")
	if _, err := svc.ChangePayment(ctx, client, b2.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "card", PaymentID: "pi_2",
	}); err == nil {
		t.Fatal("expected verification failure to block the transition")
	}
	got, _ := repo.GetByID(ctx, b2.ID)
	if got.PaymentStatus != models.PaymentPending {
		t.Fatalf("failed verification must not change state, got %s", got.PaymentStatus)
	}
}

func TestDeleteBooking(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())
	if err := svc.DeleteBooking(ctx, client, b.ID); err != nil {
		t.Fatalf("unpaid delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, b.ID); !errors.Is(err, bookingRepo.ErrNotFound) {
		t.Fatal("booking should be gone")
	}

	b2, _ := svc.CreateBooking(ctx, client, createInput())
	if _, err := svc.ChangePayment(ctx, client, b2.ID, PaymentInput{
		PaymentStatus: "paid", PaymentMethod: "cash", PaymentID: "tx-1",
	}); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if err := svc.DeleteBooking(ctx, client, b2.ID); !errors.Is(err, ErrPaidDeletion) {
		t.Fatalf("expected ErrPaidDeletion, got %v", err)
	}
}

func TestAttachRating(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ratings := &stubRatingService{}
	svc.RatingSvc = ratings
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	// Not completed yet.
	if _, err := svc.AttachRating(ctx, client, b.ID, 5, "great"); !errors.Is(err, ErrRatingNotAllowed) {
		t.Fatalf("expected ErrRatingNotAllowed, got %v", err)
	}

	svc.Now = func() time.Time { return testNow.Add(6 * time.Hour) }
	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusConfirmed, ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, owner, b.ID, models.StatusCompleted, ""); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// Only the booking's client may rate.
	if _, err := svc.AttachRating(ctx, owner, b.ID, 5, "great"); !errors.Is(err, ErrRatingNotAllowed) {
		t.Fatalf("expected ErrRatingNotAllowed for non-client, got %v", err)
	}

	rated, err := svc.AttachRating(ctx, client, b.ID, 5, "great session")
	if err != nil {
		t.Fatalf("rating failed: %v", err)
	}
	if rated.Rating == nil || rated.Rating.Rating != 5 || rated.Rating.Review != "great session" {
		t.Fatalf("embedded rating = %+v", rated.Rating)
	}
	if ratings.added == nil || ratings.added.ProviderID != "a1" {
		t.Fatalf("rating service not invoked for provider, got %+v", ratings.added)
	}

	stored, _ := repo.GetByID(ctx, b.ID)
	if stored.Rating == nil {
		t.Fatal("rating not persisted on the booking")
	}
}

func TestGetBooking_Authorization(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, _ := svc.CreateBooking(ctx, client, createInput())

	for _, actor := range []models.Actor{client, owner, admin} {
		if _, err := svc.GetBooking(ctx, actor, b.ID); err != nil {
			t.Errorf("%s should read the booking: %v", actor.Role, err)
		}
	}
	if _, err := svc.GetBooking(ctx, stranger, b.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.GetBooking(ctx, client, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListProviderBookings_OwnerOnly(t *testing.T) {
	repo := newMockBookingRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, client, createInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ListProviderBookings(ctx, owner, "a1", "2026-03-02")
	if err != nil {
		t.Fatalf("owner list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d bookings, want 1", len(got))
	}

	if _, err := svc.ListProviderBookings(ctx, stranger, "a1", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.ListProviderBookings(ctx, admin, "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
