package config

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"

	ProviderAsaas       = "asaas"
	ProviderMercadoPago = "mercadopago"
	ProviderStripe      = "stripe"
	ProviderMock        = "mock"
)

var ErrMissingConfig = errors.New("missing required configuration")

// Config is loaded once at startup and passed down to the constructors that need it.
type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	ShutdownTimeout time.Duration

	StoreDriver      string
	AWSRegion        string
	DynamoDBEndpoint string
	PatientsTable    string
	PaymentsTable    string
	DatabaseURL      string

	PaymentProvider        string
	AsaasAPIKey            string
	AsaasSandbox           bool
	AsaasTimeout           time.Duration
	MercadoPagoAccessToken string
	StripeSecretKey        string
	StripeSuccessURL       string
	StripeCancelURL        string

	PlanAmount      decimal.Decimal
	PlanDescription string
	PaymentDueDays  int

	FallbackRedirectURL string
	ErrorWebhookURL     string
	ErrorWebhookTimeout time.Duration

	CORSAllowedOrigins []string
}

// ParameterStore is the slice of the SSM API the loader uses.
type ParameterStore interface {
	ssm.GetParametersByPathAPIClient
}

type loadOptions struct {
	store ParameterStore
}

type LoadOption func(*loadOptions)

// WithParameterStore replaces the SSM client built from the default AWS chain.
func WithParameterStore(s ParameterStore) LoadOption {
	return func(o *loadOptions) { o.store = s }
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("STORE_DRIVER", StoreDynamoDB)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("PATIENTS_TABLE", "patients")
	v.SetDefault("PAYMENTS_TABLE", "payments")
	v.SetDefault("PAYMENT_PROVIDER", ProviderAsaas)
	v.SetDefault("ASAAS_SANDBOX", false)
	v.SetDefault("ASAAS_TIMEOUT", 30*time.Second)
	v.SetDefault("PLAN_AMOUNT", "49.90")
	v.SetDefault("PLAN_DESCRIPTION", "Plano Alimentar Personalizado - 30 dias")
	v.SetDefault("PAYMENT_DUE_DAYS", 3)
	v.SetDefault("ERROR_WEBHOOK_TIMEOUT", 5*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("USE_AWS_PARAMETER_STORE", false)
	v.SetDefault("AWS_PARAMETER_PATH", "/nutri-quiz/production")
}

// Load reads the environment and, when USE_AWS_PARAMETER_STORE is true, the
// parameters under AWS_PARAMETER_PATH, which take precedence. It fails
// listing every required key that ended up empty.
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if v.GetBool("USE_AWS_PARAMETER_STORE") {
		store := o.store
		if store == nil {
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(v.GetString("AWS_REGION")))
			if err != nil {
				return nil, fmt.Errorf("aws config: %w", err)
			}
			store = ssm.NewFromConfig(awsCfg)
		}

		params, err := FetchParameters(ctx, store, v.GetString("AWS_PARAMETER_PATH"))
		if err != nil {
			return nil, err
		}
		for name, value := range params {
			v.Set(name, value)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FetchParameters returns every parameter below path (recursive, decrypted),
// keyed by its name relative to path: "/app/prod/ASAAS_API_KEY" -> "ASAAS_API_KEY".
func FetchParameters(ctx context.Context, store ParameterStore, path string) (map[string]string, error) {
	out := map[string]string{}
	p := ssm.NewGetParametersByPathPaginator(store, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ssm get parameters by path %s: %w", path, err)
		}
		for _, param := range page.Parameters {
			name := strings.TrimPrefix(aws.ToString(param.Name), path)
			name = strings.TrimPrefix(name, "/")
			if name == "" {
				continue
			}
			out[name] = aws.ToString(param.Value)
		}
	}
	return out, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(v.GetString("PLAN_AMOUNT")))
	if err != nil {
		return nil, fmt.Errorf("PLAN_AMOUNT: %w", err)
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_PROVIDER")))
	if isTruthy(v.GetString("PAYMENT_GATEWAY_MOCK")) {
		provider = ProviderMock
	}

	return &Config{
		Port:            v.GetString("PORT"),
		AppEnv:          v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		StoreDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		AWSRegion:        v.GetString("AWS_REGION"),
		DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		PatientsTable:    v.GetString("PATIENTS_TABLE"),
		PaymentsTable:    v.GetString("PAYMENTS_TABLE"),
		DatabaseURL:      v.GetString("DATABASE_URL"),

		PaymentProvider:        provider,
		AsaasAPIKey:            v.GetString("ASAAS_API_KEY"),
		AsaasSandbox:           v.GetBool("ASAAS_SANDBOX"),
		AsaasTimeout:           v.GetDuration("ASAAS_TIMEOUT"),
		MercadoPagoAccessToken: v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
		StripeSecretKey:        v.GetString("STRIPE_SECRET_KEY"),
		StripeSuccessURL:       v.GetString("STRIPE_SUCCESS_URL"),
		StripeCancelURL:        v.GetString("STRIPE_CANCEL_URL"),

		PlanAmount:      amount,
		PlanDescription: v.GetString("PLAN_DESCRIPTION"),
		PaymentDueDays:  v.GetInt("PAYMENT_DUE_DAYS"),

		FallbackRedirectURL: v.GetString("FALLBACK_REDIRECT_URL"),
		ErrorWebhookURL:     v.GetString("ERROR_WEBHOOK_URL"),
		ErrorWebhookTimeout: v.GetDuration("ERROR_WEBHOOK_TIMEOUT"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

// Validate reports every required key that is missing for the selected store and provider.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("FALLBACK_REDIRECT_URL", c.FallbackRedirectURL)

	switch c.StoreDriver {
	case StoreDynamoDB:
		require("AWS_REGION", c.AWSRegion)
		require("PATIENTS_TABLE", c.PatientsTable)
		require("PAYMENTS_TABLE", c.PaymentsTable)
	case StorePostgres:
		require("DATABASE_URL", c.DatabaseURL)
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.PaymentProvider {
	case ProviderAsaas:
		require("ASAAS_API_KEY", c.AsaasAPIKey)
	case ProviderMercadoPago:
		require("MERCADOPAGO_ACCESS_TOKEN", c.MercadoPagoAccessToken)
	case ProviderStripe:
		require("STRIPE_SECRET_KEY", c.StripeSecretKey)
		require("STRIPE_SUCCESS_URL", c.StripeSuccessURL)
		require("STRIPE_CANCEL_URL", c.StripeCancelURL)
	case ProviderMock:
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider)
	}

	if !c.PlanAmount.IsPositive() {
		return fmt.Errorf("PLAN_AMOUNT must be positive, got %s", c.PlanAmount)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) Development() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev" || c.AppEnv == "local"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
