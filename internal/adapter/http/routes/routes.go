package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "nutri_quiz/docs"
	"nutri_quiz/internal/adapter/http/handlers"
	"nutri_quiz/internal/adapter/persistence/repository"
	"nutri_quiz/internal/config"
	"nutri_quiz/internal/infrastructure/database"
	"nutri_quiz/internal/infrastructure/notifier"
	"nutri_quiz/internal/infrastructure/payments"
	"nutri_quiz/internal/usecase"
	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the adapters the HTTP layer is assembled from.
type Dependencies struct {
	Patients interfaces.IPatientRepository
	Payments interfaces.IPaymentRepository
	Gateway  interfaces.IPaymentGateway
	Notifier interfaces.IErrorNotifier
}

// Run wires the configured store, gateway and notifier, then serves until ctx
// is cancelled and shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	deps, closeStore, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      NewRouter(cfg, deps, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.AsaasTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("[http][server] starting", "addr", srv.Addr, "store", cfg.StoreDriver, "provider", cfg.PaymentProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start the application: %w", err)
	case <-ctx.Done():
	}

	log.Infow("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter mounts middlewares and routes on a fresh gin engine.
func NewRouter(cfg *config.Config, deps Dependencies, log *logger.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	submission := usecase.NewQuizSubmissionUseCase(
		deps.Patients,
		deps.Payments,
		deps.Gateway,
		deps.Notifier,
		usecase.SubmissionSettings{
			Amount:              cfg.PlanAmount,
			Description:         cfg.PlanDescription,
			DueInDays:           cfg.PaymentDueDays,
			FallbackRedirectURL: cfg.FallbackRedirectURL,
		},
		log,
	)
	listing := usecase.NewPatientPaymentsUseCase(deps.Patients, deps.Payments, log)

	quizHandler := handlers.NewQuizHandler(submission, log)
	paymentHandler := handlers.NewPatientPaymentHandler(listing, log)

	addSubmitRoutes(router, quizHandler)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuizRoutes(v1, quizHandler, paymentHandler)

	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, log *logger.Logger) {
	router.Use(gin.Logger())
	router.Use(handlers.Recovery(log))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

func buildDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (Dependencies, func(), error) {
	deps := Dependencies{
		Notifier: notifier.NewWebhookNotifier(cfg.ErrorWebhookURL, cfg.ErrorWebhookTimeout, log),
	}

	gateway, err := payments.NewGateway(cfg, log)
	if err != nil {
		return Dependencies{}, nil, fmt.Errorf("payment gateway: %w", err)
	}
	deps.Gateway = gateway

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return Dependencies{}, nil, err
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return Dependencies{}, nil, err
		}
		deps.Patients = repository.NewPatientPostgresRepository(pool)
		deps.Payments = repository.NewPaymentPostgresRepository(pool)
		log.Infow("[http][server] using postgres store")
		return deps, pool.Close, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return Dependencies{}, nil, err
		}
		deps.Patients = repository.NewPatientDynamoRepository(ddb, cfg.PatientsTable)
		deps.Payments = repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable)
		log.Infow("[http][server] using dynamodb store", "patients_table", cfg.PatientsTable, "payments_table", cfg.PaymentsTable)
		return deps, func() {}, nil
	}
}
