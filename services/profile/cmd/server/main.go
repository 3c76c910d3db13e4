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
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linkiq/linkiq/services/profile/internal/cache"
	"github.com/linkiq/linkiq/services/profile/internal/config"
	"github.com/linkiq/linkiq/services/profile/internal/handler"
	"github.com/linkiq/linkiq/services/profile/internal/kafka"
	"github.com/linkiq/linkiq/services/profile/internal/observability"
	"github.com/linkiq/linkiq/services/profile/internal/outbox"
	"github.com/linkiq/linkiq/services/profile/internal/repository"
	"github.com/linkiq/linkiq/services/profile/internal/service"
	"github.com/linkiq/linkiq/services/profile/internal/storage"
	"github.com/linkiq/linkiq/services/profile/internal/themestore"
	"github.com/linkiq/linkiq/services/profile/internal/transport/grpc"
	"github.com/linkiq/linkiq/services/profile/internal/tx"
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

	// Database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	// Redis
	rdb := cache.New(cfg.RedisAddr)
	defer rdb.Close()

	var themeBackend, cardBackend themestore.Store
	switch cfg.ThemeStore {
	case "bolt":
		bs, err := themestore.OpenBolt(cfg.BoltPath)
		if err != nil {
			log.Fatal("theme store open failed", zap.String("path", cfg.BoltPath), zap.Error(err))
		}
		defer bs.Close()
		cs, err := bs.Bucket("cards")
		if err != nil {
			log.Fatal("card store open failed", zap.Error(err))
		}
		themeBackend, cardBackend = bs, cs
	default:
		themeBackend = themestore.NewRedisStore(rdb)
		cardBackend = &themestore.RedisStore{R: rdb, Prefix: "card:"}
	}
	themes := themestore.New(themeBackend)
	cards := themestore.NewCardStore(cardBackend)

	media, err := storage.NewFileStore(cfg.MediaDir, cfg.PublicBaseURL+"/media")
	if err != nil {
		log.Fatal("media store failed", zap.Error(err))
	}

	// Repositories
	profileRepo := &repository.ProfileRepo{DB: db}
	linkRepo := &repository.LinkRepo{DB: db}
	outboxRepo := outbox.NewRepository(db)
	txm := &tx.Manager{DB: db}

	// Services
	profileSvc := &service.ProfileService{
		Repo:        profileRepo,
		Cache:       &cache.ProfileCache{R: rdb},
		Outbox:      outboxRepo,
		Tx:          txm,
		Media:       media,
		MaxSongSize: cfg.MaxUploadBytes,
	}
	linkSvc := &service.LinkService{Repo: linkRepo, Outbox: outboxRepo, Tx: txm}
	themeSvc := &service.CustomThemeService{Store: themes, Profiles: profileRepo}
	cardSvc := &service.CardService{Store: cards, Profiles: profileRepo}
	publicSvc := &service.PublicPageService{
		Profiles:    profileSvc,
		Links:       linkRepo,
		Themes:      themes,
		PageBaseURL: cfg.PageBaseURL,
	}

	// Kafka producer + outbox publisher
	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	// HTTP Server for Observability (Metrics & Health)
	obsMux := chi.NewRouter()
	obsMux.Handle("/metrics", promhttp.Handler())
	obsMux.Get("/health/live", observability.HealthLiveHandler)
	obsMux.Get("/health/ready", observability.HealthReadyHandler(db))
	obsSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: obsMux}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: handler.NewRouter(cfg, handler.Services{
			Profiles: profileSvc,
			Links:    linkSvc,
			Themes:   themeSvc,
			Cards:    cardSvc,
			Public:   publicSvc,
		}, db),
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv := grpc.NewServer(db)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		outbox.NewPublisher(outboxRepo, producer).Start(gctx)
		return nil
	})

	// Kafka consumer: auto-create profile on user registration
	g.Go(func() error {
		kafka.StartUserCreatedConsumer(gctx, cfg.KafkaBrokers, profileRepo)
		return nil
	})

	g.Go(func() error {
		grpcSrv.Probe(gctx, 10*time.Second)
		return nil
	})

	g.Go(func() error {
		log.Info("HTTP observability server started", zap.String("addr", cfg.HTTPAddr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("profile HTTP started", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return grpcSrv.Start(cfg.GRPCAddr)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating shutdown")

		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutCtx); err != nil {
			log.Error("profile shutdown failed", zap.Error(err))
		}
		if err := obsSrv.Shutdown(shutCtx); err != nil {
			log.Error("observability shutdown failed", zap.Error(err))
		}
		grpcSrv.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", zap.Error(err))
	}
	log.Info("profile stopped")
}
