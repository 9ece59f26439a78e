package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"
)

const (
	AsaasSandboxBaseURL    = "https://sandbox.asaas.com/api/v3"
	AsaasProductionBaseURL = "https://api.asaas.com/v3"

	// asaasBillingTypeUndefined lets the payer pick boleto, PIX or card on the invoice page.
	asaasBillingTypeUndefined = "UNDEFINED"
)

var (
	ErrMissingAsaasAPIKey = errors.New("missing ASAAS_API_KEY")
	ErrAsaasEmptyResponse = errors.New("asaas returned no identifier")
)

// AsaasError is a non-2xx answer from the Asaas API.
type AsaasError struct {
	StatusCode int
	Body       string
}

func (e *AsaasError) Error() string {
	return fmt.Sprintf("asaas: status %d: %s", e.StatusCode, e.Body)
}

type AsaasSettings struct {
	APIKey  string
	Sandbox bool
	// BaseURL overrides the sandbox/production selection (tests, proxies).
	BaseURL string
	Timeout time.Duration
}

type asaasCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	CPFCNPJ string `json:"cpfCnpj,omitempty"`
}

type asaasCustomerResponse struct {
	ID string `json:"id"`
}

type asaasPaymentRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"externalReference"`
}

type asaasPaymentResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoiceUrl"`
}

// AsaasGateway talks to the Asaas REST API v3.
type AsaasGateway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

var _ interfaces.IPaymentGateway = (*AsaasGateway)(nil)

func NewAsaasGateway(s AsaasSettings, log *logger.Logger) (*AsaasGateway, error) {
	log = logger.OrNop(log)
	if strings.TrimSpace(s.APIKey) == "" {
		log.Errorw("[payment][gateway] missing ASAAS_API_KEY")
		return nil, ErrMissingAsaasAPIKey
	}

	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = AsaasProductionBaseURL
		if s.Sandbox {
			baseURL = AsaasSandboxBaseURL
		}
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	log.Infow("[payment][gateway] Asaas client initialized", "base_url", baseURL, "sandbox", s.Sandbox)
	return &AsaasGateway{
		apiKey:     s.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

func (g *AsaasGateway) Name() string { return "asaas" }

func (g *AsaasGateway) CreateCustomer(ctx context.Context, c interfaces.GatewayCustomer) (string, error) {
	g.log.Infow("[payment][gateway] create customer start", "email", c.Email)

	var out asaasCustomerResponse
	if err := g.post(ctx, "/customers", asaasCustomerRequest{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		CPFCNPJ: c.CPF,
	}, &out); err != nil {
		g.log.Errorw("[payment][gateway] create customer failed", "email", c.Email, "error", err)
		return "", err
	}
	if out.ID == "" {
		return "", ErrAsaasEmptyResponse
	}

	g.log.Infow("[payment][gateway] create customer success", "customer_id", out.ID)
	return out.ID, nil
}

func (g *AsaasGateway) CreatePayment(ctx context.Context, charge interfaces.GatewayCharge) (interfaces.GatewayInvoice, error) {
	g.log.Infow("[payment][gateway] create payment start", "customer_id", charge.CustomerID, "due_date", charge.DueDate)

	value, _ := charge.Amount.Round(2).Float64()
	var out asaasPaymentResponse
	if err := g.post(ctx, "/payments", asaasPaymentRequest{
		Customer:          charge.CustomerID,
		BillingType:       asaasBillingTypeUndefined,
		Value:             value,
		DueDate:           charge.DueDate,
		Description:       charge.Description,
		ExternalReference: charge.ExternalReference,
	}, &out); err != nil {
		g.log.Errorw("[payment][gateway] create payment failed", "customer_id", charge.CustomerID, "error", err)
		return interfaces.GatewayInvoice{}, err
	}
	if out.ID == "" {
		return interfaces.GatewayInvoice{}, ErrAsaasEmptyResponse
	}

	g.log.Infow("[payment][gateway] create payment success", "payment_id", out.ID, "status", out.Status)
	return interfaces.GatewayInvoice{ID: out.ID, Status: out.Status, URL: out.InvoiceURL}, nil
}

func (g *AsaasGateway) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &AsaasError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode asaas %s response: %w", path, err)
	}
	return nil
}
