package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nutri_quiz/internal/adapter/http/routes"
	"nutri_quiz/internal/config"
	"nutri_quiz/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Nutri Quiz API
// @version         1.0
// @description     Lead capture quiz submission and checkout brokering.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.New().Errorw("[config] failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.For(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := routes.Run(ctx, cfg, log); err != nil {
		log.Errorw("[http][server] stopped with error", "error", err)
		os.Exit(1)
	}
	log.Infow("[http][server] stopped")
}
