package booking

import (
	"testing"

	"gigbook/models"
)

func TestCanTransition(t *testing.T) {
	all := []models.BookingStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
	}
	allowed := map[[2]models.BookingStatus]bool{
		{models.StatusPending, models.StatusConfirmed}:   true,
		{models.StatusPending, models.StatusCancelled}:   true,
		{models.StatusConfirmed, models.StatusCompleted}: true,
		{models.StatusConfirmed, models.StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			want := allowed[[2]models.BookingStatus{from, to}]
			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	all := []models.BookingStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
	}
	for _, terminal := range []models.BookingStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Errorf("terminal state %s must not transition to %s", terminal, to)
			}
		}
	}
}

func TestCanTransitionPayment(t *testing.T) {
	all := []models.PaymentStatus{
		models.PaymentPending,
		models.PaymentPaid,
		models.PaymentRefunded,
	}
	allowed := map[[2]models.PaymentStatus]bool{
		{models.PaymentPending, models.PaymentPaid}:  true,
		{models.PaymentPaid, models.PaymentRefunded}: true,
	}

	for _, from := range all {
		for _, to := range all {
			got := CanTransitionPayment(from, to)
			want := allowed[[2]models.PaymentStatus{from, to}]
			if got != want {
				t.Errorf("CanTransitionPayment(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestAuthorize(t *testing.T) {
	b := &models.Booking{ID: "b1", ClientID: "client-1", ArtistID: "a1"}
	provider := &models.Provider{
		ID:      "a1",
		Profile: models.Profile{OwnerUserID: "owner-1", Type: models.ProviderArtist},
	}

	cases := []struct {
		name    string
		actor   models.Actor
		wantErr bool
	}{
		{"client", models.Actor{UserID: "client-1", Role: models.RoleClient}, false},
		{"provider owner", models.Actor{UserID: "owner-1", Role: models.RoleArtist}, false},
		{"admin", models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, false},
		{"system", models.Actor{UserID: "system", Role: models.RoleSystem}, false},
		{"stranger", models.Actor{UserID: "someone-else", Role: models.RoleClient}, true},
		{"empty actor", models.Actor{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorize(tc.actor, b, provider)
			if tc.wantErr && err != ErrUnauthorized {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorize_MissingProvider(t *testing.T) {
	b := &models.Booking{ID: "b1", ClientID: "client-1", ArtistID: "gone"}

	if err := authorize(models.Actor{UserID: "client-1", Role: models.RoleClient}, b, nil); err != nil {
		t.Fatalf("client should stay authorized without provider: %v", err)
	}
	if err := authorize(models.Actor{UserID: "owner-1", Role: models.RoleArtist}, b, nil); err != ErrUnauthorized {
		t.Fatalf("owner check needs the provider document, got %v", err)
	}
}
