package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutri_quiz/internal/adapter/http/client"
	"nutri_quiz/internal/domain/quiz"
	"nutri_quiz/internal/flow"
	"nutri_quiz/pkg/logger"

	"github.com/spf13/pflag"
)

func main() {
	var (
		server  = pflag.StringP("server", "s", "http://localhost:8080", "base URL of the quiz API")
		variant = pflag.StringP("variant", "v", string(quiz.VariantFull), "quiz variant (full or compact)")
		out     = pflag.StringP("out", "o", "", "write the answers as JSON to this file (e.g. respostas_quiz.json)")
		timeout = pflag.Duration("timeout", 60*time.Second, "submission timeout")
		debug   = pflag.Bool("debug", false, "log controller events")
	)
	pflag.Parse()

	log := logger.Nop()
	if *debug {
		log = logger.NewDevelopment()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *server, quiz.Variant(*variant), *out, *timeout, log); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, server string, variant quiz.Variant, out string, timeout time.Duration, log *logger.Logger) error {
	steps, err := quiz.Steps(variant)
	if err != nil {
		return err
	}

	s := &session{
		scheduler: &queueScheduler{},
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		exportTo:  out,
	}
	submitter := client.NewQuizClient(server, &http.Client{Timeout: timeout}, log)

	s.ctrl, err = flow.New(steps, submitter, s, flow.WithScheduler(s.scheduler), flow.WithLogger(log))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Digite o número da opção, Enter para continuar, b para voltar, q para sair.")
	return s.run(ctx)
}
