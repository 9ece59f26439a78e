package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/customer"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const mercadoPagoCurrency = "BRL"

// Preferences close at the end of the due date, Brasília time.
var mercadoPagoZone = time.FixedZone("BRT", -3*60*60)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrMercadoPagoEmptyResponse        = errors.New("mercado pago returned no identifier")
)

// mpCustomers and mpPreferences are the SDK client methods the gateway calls.
type mpCustomers interface {
	Create(ctx context.Context, request customer.Request) (*customer.Response, error)
}

type mpPreferences interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway registers the patient as a Mercado Pago customer and
// sells the plan through a Checkout Pro preference.
type MercadoPagoGateway struct {
	customers   mpCustomers
	preferences mpPreferences
	sandbox     bool
	log         *logger.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, log *logger.Logger) (*MercadoPagoGateway, error) {
	log = logger.OrNop(log)
	if accessToken == "" {
		log.Errorw("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Errorw("[payment][gateway] failed creating sdk config", "error", err)
		return nil, err
	}
	log.Infow("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		customers:   customer.NewClient(cfg),
		preferences: preference.NewClient(cfg),
		sandbox:     strings.HasPrefix(accessToken, "TEST-"),
		log:         log,
	}, nil
}

func (g *MercadoPagoGateway) Name() string { return "mercadopago" }

func (g *MercadoPagoGateway) CreateCustomer(ctx context.Context, c interfaces.GatewayCustomer) (string, error) {
	if g == nil || g.customers == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Infow("[payment][gateway] create customer start", "email", c.Email)

	first, last := splitName(c.Name)
	req := customer.Request{
		Email:     c.Email,
		FirstName: first,
		LastName:  last,
	}
	if len(c.Phone) >= 10 {
		req.Phone = &customer.PhoneRequest{AreaCode: c.Phone[:2], Number: c.Phone[2:]}
	}
	if c.CPF != "" {
		req.Identification = &customer.IdentificationRequest{Type: "CPF", Number: c.CPF}
	}

	resp, err := g.customers.Create(ctx, req)
	if err != nil {
		g.log.Errorw("[payment][gateway] sdk create customer failed", "email", c.Email, "error", err)
		return "", err
	}
	if resp == nil || resp.ID == "" {
		return "", ErrMercadoPagoEmptyResponse
	}

	g.log.Infow("[payment][gateway] create customer success", "customer_id", resp.ID)
	return resp.ID, nil
}

// CreatePayment opens a preference for the plan. Mercado Pago has no
// pending-invoice status, so the invoice status is always "pending".
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, charge interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
	if g == nil || g.preferences == nil {
		return interfaces.GatewayInvoice{}, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Infow("[payment][gateway] create preference start", "customer_id", charge.CustomerID)

	expiresAt, err := preferenceExpiry(charge.DueDate)
	if err != nil {
		return interfaces.GatewayInvoice{}, err
	}

	unitPrice, _ := charge.Amount.Round(2).Float64()
	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:          charge.ExternalReference,
			Title:       charge.Description,
			Description: charge.Description,
			Quantity:    1,
			UnitPrice:   unitPrice,
			CurrencyID:  mercadoPagoCurrency,
		}},
		Payer:             &preference.PayerRequest{Email: charge.CustomerEmail},
		ExternalReference: charge.ExternalReference,
	}
	if expiresAt != nil {
		req.Expires = true
		req.ExpirationDateTo = expiresAt
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		g.log.Errorw("[payment][gateway] sdk create preference failed", "error", err)
		return interfaces.GatewayInvoice{}, err
	}
	if resp == nil || resp.ID == "" {
		return interfaces.GatewayInvoice{}, ErrMercadoPagoEmptyResponse
	}

	url := resp.InitPoint
	if g.sandbox && resp.SandboxInitPoint != "" {
		url = resp.SandboxInitPoint
	}
	g.log.Infow("[payment][gateway] create preference success", "preference_id", resp.ID)
	return interfaces.GatewayInvoice{ID: resp.ID, Status: "pending", URL: url}, nil
}

// preferenceExpiry turns a YYYY-MM-DD due date into the last second of that
// day. An empty due date means the preference never expires.
func preferenceExpiry(dueDate string) (*time.Time, error) {
	if dueDate == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, dueDate, mercadoPagoZone)
	if err != nil {
		return nil, fmt.Errorf("mercado pago due date %q: %w", dueDate, err)
	}
	end := day.Add(24*time.Hour - time.Second)
	return &end, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
