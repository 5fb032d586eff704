package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/container"
	"github.com/zelenmun/EvalUp/internal/database"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (or the Lambda handler when running on AWS Lambda)",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("jwt-secret", "", "HMAC secret for session tokens (or set EVALUP_JWT_SECRET)")
	f.Duration("jwt-ttl", 24*time.Hour, "Session token lifetime")
	f.String("crypto-key", "", "32 byte key for personal data at rest")
	f.String("ai-provider", "gemini", "AI provider (gemini, openai)")
	f.String("ai-model", "", "AI model name")
	f.String("ai-base-url", "", "Base URL for OpenAI-compatible providers")
	f.String("ai-api-key", "", "AI provider API key")
	f.StringSlice("cors-origins", []string{"http://localhost:5173"}, "Allowed CORS origins")
	f.Bool("auto-migrate", false, "Run migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	s := config.Load(v)

	container.Init(s)
	if err := config.Connect(cmd.Context(), s.DBDriver, s.DBDSN); err != nil {
		return err
	}
	if v.GetBool("auto-migrate") {
		if err := database.Migrate(cmd.Context(), config.DB); err != nil {
			return err
		}
	}

	c := container.New(cmd.Context(), s, config.DB, nil)
	handler := c.Router()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		config.Logger.Info("Starting Lambda handler")
		lambda.Start(httpadapter.NewV2(handler).ProxyWithContext)
		return nil
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", s.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
