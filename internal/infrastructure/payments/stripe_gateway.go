package payments

import (
	"context"
	"errors"

	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/customer"
)

const stripeCurrency = "brl"

var (
	ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")
	ErrStripeEmptyResponse    = errors.New("stripe returned no checkout url")
)

type StripeSettings struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// StripeGateway sells the plan through a hosted Checkout Session.
type StripeGateway struct {
	settings StripeSettings
	log      *logger.Logger

	newCustomer func(*stripe.CustomerParams) (*stripe.Customer, error)
	newSession  func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(s StripeSettings, log *logger.Logger) (*StripeGateway, error) {
	log = logger.OrNop(log)
	if s.SecretKey == "" {
		log.Errorw("[payment][gateway] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	stripe.Key = s.SecretKey
	log.Infow("[payment][gateway] Stripe client initialized")

	return &StripeGateway{
		settings:    s,
		log:         log,
		newCustomer: customer.New,
		newSession:  session.New,
	}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateCustomer(ctx context.Context, c interfaces.GatewayCustomer) (string, error) {
	g.log.Infow("[payment][gateway] create customer start", "email", c.Email)

	params := &stripe.CustomerParams{
		Name:  stripe.String(c.Name),
		Email: stripe.String(c.Email),
		Phone: stripe.String(c.Phone),
	}
	params.Context = ctx
	if c.CPF != "" {
		params.AddMetadata("cpf", c.CPF)
	}

	cus, err := g.newCustomer(params)
	if err != nil {
		g.log.Errorw("[payment][gateway] create customer failed", "email", c.Email, "error", err)
		return "", err
	}

	g.log.Infow("[payment][gateway] create customer success", "customer_id", cus.ID)
	return cus.ID, nil
}

func (g *StripeGateway) CreatePayment(ctx context.Context, charge interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
	g.log.Infow("[payment][gateway] create checkout session start", "customer_id", charge.CustomerID)

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(charge.CustomerID),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(stripeCurrency),
					UnitAmount: stripe.Int64(charge.Amount.Shift(2).Round(0).IntPart()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(charge.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.settings.SuccessURL),
		CancelURL:         stripe.String(g.settings.CancelURL),
		ClientReferenceID: stripe.String(charge.ExternalReference),
	}
	params.Context = ctx
	params.AddMetadata("due_date", charge.DueDate)

	sess, err := g.newSession(params)
	if err != nil {
		g.log.Errorw("[payment][gateway] create checkout session failed", "customer_id", charge.CustomerID, "error", err)
		return interfaces.GatewayInvoice{}, err
	}
	if sess.URL == "" {
		return interfaces.GatewayInvoice{}, ErrStripeEmptyResponse
	}

	g.log.Infow("[payment][gateway] create checkout session success", "session_id", sess.ID)
	return interfaces.GatewayInvoice{ID: sess.ID, Status: string(sess.PaymentStatus), URL: sess.URL}, nil
}
