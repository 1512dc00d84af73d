package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripePaymentVerifier checks a Stripe PaymentIntent before the engine
// records a card payment. The global stripe.Key is set at startup.
type StripePaymentVerifier struct{}

func (StripePaymentVerifier) VerifyPayment(ctx context.Context, paymentID string, amount float64, currency string) error {
	pi, err := paymentintent.Get(paymentID, nil)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment intent %s: %w", paymentID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s has status %s, want succeeded", paymentID, pi.Status)
	}
	if !strings.EqualFold(string(pi.Currency), currency) {
		return fmt.Errorf("payment intent %s currency %s does not match booking currency %s", paymentID, pi.Currency, currency)
	}
	// Stripe amounts are in minor units.
	if pi.Amount < int64(amount*100) {
		return fmt.Errorf("payment intent %s covers %d, booking costs %d", paymentID, pi.Amount, int64(amount*100))
	}
	return nil
}
