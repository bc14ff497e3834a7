package main

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gestaoplus/admin-gateway/internal/api"
	"github.com/gestaoplus/admin-gateway/internal/clients/assistant"
	"github.com/gestaoplus/admin-gateway/internal/clients/backend"
	"github.com/gestaoplus/admin-gateway/internal/clients/cnpjws"
	"github.com/gestaoplus/admin-gateway/internal/clients/viacep"
	"github.com/gestaoplus/admin-gateway/internal/repository"
	"github.com/gestaoplus/admin-gateway/internal/service"
	"github.com/gestaoplus/admin-gateway/pkg/broker"
	"github.com/gestaoplus/admin-gateway/pkg/config"
	"github.com/gestaoplus/admin-gateway/pkg/job"
	"github.com/gestaoplus/admin-gateway/pkg/logger"
	"github.com/gestaoplus/admin-gateway/pkg/postgres"
	"github.com/gestaoplus/admin-gateway/pkg/security"
)

const (
	ReadTimeout  = 15 * time.Second
	WriteTimeout = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	sessions := repository.NewSessionRepository(pool)

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	cepClient := viacep.NewClient(cfg.Lookup)
	registryClient := cnpjws.NewClient(cfg.Lookup)
	assistantClient := assistant.NewClient(cfg.Assistant)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	defer producer.Close()

	tokenKey, err := sessionTokenKey(cfg.Session.TokenPublicKey)
	panicOnErr("parse session token public key", err)

	s := service.New(backendClient, sessions, producer, cepClient, registryClient, assistantClient, tokenKey)

	{
		job.NewService().
			RegisterJob("purge expired sessions", cfg.Session.PurgeInterval, s.PurgeExpiredSessions).
			Start(ctx)
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(s)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "gateway started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

// sessionTokenKey decodes the backend issuer's public key from env. An
// empty value disables signature verification on session tokens.
func sessionTokenKey(encoded string) (*rsa.PublicKey, error) {
	if encoded == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}

	return security.ParsePublicKey(decoded)
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
