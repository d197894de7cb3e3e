package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipment-loan/internal/adapter/export"
	httpadp "equipment-loan/internal/adapter/http"
	"equipment-loan/internal/adapter/mail"
	"equipment-loan/internal/adapter/middleware"
	"equipment-loan/internal/adapter/repository/sqlite"
	"equipment-loan/internal/infrastructure/cache"
	ucReview "equipment-loan/internal/usecase/review"
	ucSubmission "equipment-loan/internal/usecase/submission"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	conn, err := a.connector()
	if err != nil {
		return err
	}
	if err := sqlite.Migrate(ctx, conn, a.log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := cache.OpenRedis(a.cfg.RedisAddr, a.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		a.log.Info("REDIS_ADDR empty: idempotency keys disabled")
	}

	sender := mail.NewSender(a.cfg.Mail, a.log.Named("mail"))
	dispatcher := mail.NewAsyncDispatcher(sender, a.log.Named("notify"))
	repo := sqlite.NewSubmissionRepository(conn)

	subs := ucSubmission.NewUsecase(repo, dispatcher, export.NewTextExporter(), a.cfg.Mail.AdminEmail, a.log)
	reviews := ucReview.NewUsecase(repo, sqlite.NewGormUoW(conn), dispatcher, sender, a.cfg.Mail.AdminEmail, a.log)

	httpLog := a.log.Named("http")
	e := httpadp.NewRouter(httpadp.Handlers{
		Health:      httpadp.NewHandler(conn),
		Submissions: httpadp.NewSubmissionHandler(subs, httpLog),
		Reviews:     httpadp.NewReviewHandler(reviews, httpLog),
	}, httpadp.RouterConfig{
		AdminPassword: a.cfg.AdminPassword,
		Idempotency:   middleware.Idempotency(rdb, a.cfg.IdempTTL, httpLog),
	}, httpLog)

	addr := ":" + a.cfg.AppPort
	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()
	a.log.Info("listening", zap.String("addr", addr), zap.String("db", conn.Path()))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	// long enough for a notification to try both transports
	grace := 2*a.cfg.Mail.Timeout + 5*time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	a.log.Info("shutting down", zap.Duration("grace", grace))
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		a.log.Warn("pending notifications abandoned", zap.Error(err))
	}
	return nil
}
