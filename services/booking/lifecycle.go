package booking

import "gigbook/models"

// statusTransitions is the closed transition table over booking status.
// completed and cancelled are terminal: nothing leaves them.
var statusTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.StatusPending: {
		models.StatusConfirmed: true,
		models.StatusCancelled: true,
	},
	models.StatusConfirmed: {
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// paymentTransitions is the independent payment axis. A refund never goes
// back to paid.
var paymentTransitions = map[models.PaymentStatus]map[models.PaymentStatus]bool{
	models.PaymentPending:  {models.PaymentPaid: true},
	models.PaymentPaid:     {models.PaymentRefunded: true},
	models.PaymentRefunded: {},
}

// CanTransition reports whether a status change is legal.
func CanTransition(from, to models.BookingStatus) bool {
	return statusTransitions[from][to]
}

// CanTransitionPayment reports whether a payment-status change is legal.
func CanTransitionPayment(from, to models.PaymentStatus) bool {
	return paymentTransitions[from][to]
}

// authorize checks the lifecycle precondition: only the booking's client,
// the referenced provider's owning user, or an admin may transition it.
func authorize(actor models.Actor, b *models.Booking, provider *models.Provider) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.UserID != "" && actor.UserID == b.ClientID {
		return nil
	}
	if provider != nil && actor.UserID != "" && actor.UserID == provider.Profile.OwnerUserID {
		return nil
	}
	return ErrUnauthorized
}
