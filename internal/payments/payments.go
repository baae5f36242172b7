// Package payments abstracts the payments provider so services and jobs can
// be tested without hitting Stripe.
package payments

import "context"

// TransferRequest moves collected funds to a host's connected account.
type TransferRequest struct {
	AmountCents int64
	Currency    string
	Destination string
	Description string
	Metadata    map[string]string
}

type Transfer struct {
	ID          string
	AmountCents int64
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// Account is a connected account as seen by the provider. Onboarding is
// complete once the provider reports the account can receive charges.
type Account struct {
	ID                 string
	OnboardingComplete bool
}

type Provider interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	CreateAccount(ctx context.Context, email string) (*Account, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)
}
