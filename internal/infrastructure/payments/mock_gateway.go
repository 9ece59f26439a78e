package payments

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"
)

// MockGateway answers like the Asaas sandbox without leaving the process.
// Identifiers are sequential so local runs are reproducible.
type MockGateway struct {
	baseURL string
	seq     atomic.Int64
	log     *logger.Logger
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(baseURL string, log *logger.Logger) *MockGateway {
	if baseURL == "" {
		baseURL = "https://sandbox.asaas.com"
	}
	log = logger.OrNop(log)
	log.Infow("[payment][gateway] mock mode enabled")
	return &MockGateway{baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

func (g *MockGateway) Name() string { return "mock" }

func (g *MockGateway) CreateCustomer(_ context.Context, c interfaces.GatewayCustomer) (string, error) {
	id := fmt.Sprintf("cus_mock_%06d", g.seq.Add(1))
	g.log.Infow("[payment][gateway] mock create customer", "email", c.Email, "customer_id", id)
	return id, nil
}

func (g *MockGateway) CreatePayment(_ context.Context, charge interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
	n := g.seq.Add(1)
	inv := interfaces.GatewayInvoice{
		ID:     fmt.Sprintf("pay_mock_%06d", n),
		Status: "PENDING",
		URL:    fmt.Sprintf("%s/i/mock%06d", g.baseURL, n),
	}
	g.log.Infow("[payment][gateway] mock create payment", "customer_id", charge.CustomerID, "payment_id", inv.ID)
	return inv, nil
}
