package payments

import (
	"fmt"

	"nutri_quiz/internal/config"
	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"
)

// NewGateway builds the provider selected by PAYMENT_PROVIDER.
func NewGateway(cfg *config.Config, log *logger.Logger) (interfaces.IPaymentGateway, error) {
	switch cfg.PaymentProvider {
	case config.ProviderAsaas:
		return NewAsaasGateway(AsaasSettings{
			APIKey:  cfg.AsaasAPIKey,
			Sandbox: cfg.AsaasSandbox,
			Timeout: cfg.AsaasTimeout,
		}, log)
	case config.ProviderMercadoPago:
		return NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, log)
	case config.ProviderStripe:
		return NewStripeGateway(StripeSettings{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.StripeSuccessURL,
			CancelURL:  cfg.StripeCancelURL,
		}, log)
	case config.ProviderMock:
		return NewMockGateway("", log), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}
