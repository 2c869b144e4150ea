// internal/payments/stripe.go
package payments

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/aniefioke/intellectual-property/internal/config"
	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

// StripeExecutor settles ledger-ordered transfers through Stripe. Principals
// are treated as Stripe customer/connected-account identifiers; amounts are
// already in the smallest currency unit, which is what Stripe expects.
type StripeExecutor struct {
	config *config.Config
}

func NewStripeExecutor(cfg *config.Config) *StripeExecutor {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &StripeExecutor{config: cfg}
}

// Transfer creates and immediately confirms an off-session payment from the
// payer with the licensor's account as the transfer destination. The ledger
// treats any Stripe rejection as a PaymentFailed outcome.
func (e *StripeExecutor) Transfer(from, to marketplace.Principal, amount uint64) error {
	if amount == 0 {
		return nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:     stripe.Int64(int64(amount)),
		Currency:   stripe.String(e.config.Payment.Currency),
		Customer:   stripe.String(string(from)),
		Confirm:    stripe.Bool(true),
		OffSession: stripe.Bool(true),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(string(to)),
		},
	}
	params.AddMetadata("payer", string(from))
	params.AddMetadata("payee", string(to))

	pi, err := paymentintent.New(params)
	if err != nil {
		return fmt.Errorf("stripe payment failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("stripe payment not settled: status %s", pi.Status)
	}

	logrus.WithFields(logrus.Fields{
		"payment_intent": pi.ID,
		"amount":         amount,
		"payee":          to,
	}).Info("Stripe transfer settled")
	return nil
}
