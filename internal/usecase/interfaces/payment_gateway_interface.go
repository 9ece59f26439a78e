package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayCustomer is what the gateway needs to register a patient as a customer.
type GatewayCustomer struct {
	Name  string
	Email string
	Phone string
	CPF   string
}

// GatewayCharge describes the invoice created for a checkout attempt.
type GatewayCharge struct {
	CustomerID        string
	CustomerEmail     string
	Amount            decimal.Decimal
	DueDate           string
	Description       string
	ExternalReference string
}

// GatewayInvoice is the gateway's answer to a charge.
type GatewayInvoice struct {
	ID     string
	Status string
	URL    string
}

// IPaymentGateway abstracts external payment providers (Asaas, Mercado Pago, Stripe).
type IPaymentGateway interface {
	Name() string
	CreateCustomer(ctx context.Context, c GatewayCustomer) (customerID string, err error)
	CreatePayment(ctx context.Context, charge GatewayCharge) (GatewayInvoice, error)
}
