package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linkiq/linkiq/services/themegen/internal/config"
	"github.com/linkiq/linkiq/services/themegen/internal/generator"
	"github.com/linkiq/linkiq/services/themegen/internal/handler"
	"github.com/linkiq/linkiq/services/themegen/internal/llm"
	"github.com/linkiq/linkiq/services/themegen/internal/observability"
	"github.com/linkiq/linkiq/services/themegen/internal/transport"
)

func main() {
	cfg := config.Load()

	// Observability
	observability.InitLogger(cfg.ServiceName, cfg.Debug)
	log := observability.Log
	defer log.Sync()

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Providers share one client; the timeout bounds a single generation.
	httpClient := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	themeLLM, err := llm.New(ctx, llm.ProviderConfig{
		Provider: cfg.Theme.Name,
		APIKey:   cfg.Theme.APIKey,
		BaseURL:  cfg.Theme.BaseURL,
		Model:    cfg.Theme.Model,
	}, httpClient)
	if err != nil {
		log.Fatal("theme provider", zap.Error(err))
	}

	pageLLM, err := llm.New(ctx, llm.ProviderConfig{
		Provider: cfg.Page.Name,
		APIKey:   cfg.Page.APIKey,
		BaseURL:  cfg.Page.BaseURL,
		Model:    cfg.Page.Model,
	}, httpClient)
	if err != nil {
		log.Fatal("page provider", zap.Error(err))
	}

	if cfg.Theme.APIKey == "" {
		log.Warn("theme provider has no API key", zap.String("provider", cfg.Theme.Name))
	}
	if cfg.Page.APIKey == "" {
		log.Warn("page provider has no API key", zap.String("provider", cfg.Page.Name))
	}

	genCfg := generator.DefaultConfig()
	genCfg.ThemeMaxTokens = cfg.ThemeMaxTokens
	genCfg.PageMaxTokens = cfg.PageMaxTokens
	genCfg.MaxPromptLength = cfg.MaxPromptLength
	gen := generator.New(themeLLM, pageLLM, genCfg)

	msgs := transport.NewMessages(cfg.Language)
	h := handler.NewThemeHandler(gen, msgs)

	// HTTP Server for Observability (Metrics & Health)
	obsMux := chi.NewRouter()
	obsMux.Handle("/metrics", promhttp.Handler())
	obsMux.Get("/health/live", observability.HealthLiveHandler)
	obsMux.Get("/health/ready", observability.HealthReadyHandler(func() bool {
		return cfg.Theme.APIKey != "" || cfg.Page.APIKey != ""
	}))
	obsSrv := &http.Server{Addr: cfg.ObsHTTPAddr, Handler: obsMux}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(cfg, h, msgs),
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP observability server started", zap.String("addr", cfg.ObsHTTPAddr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("themegen started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating shutdown")

		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutCtx); err != nil {
			log.Error("themegen shutdown failed", zap.Error(err))
		}
		if err := obsSrv.Shutdown(shutCtx); err != nil {
			log.Error("observability shutdown failed", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
	}
	log.Info("themegen stopped")
}
