package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/db"
	"github.com/ignatzorin/marketplace-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/marketplace-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/marketplace-backend/internal/http/router"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/repository"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// demoListingsPerUser количество объявлений на каждого демо-пользователя.
const demoListingsPerUser = 3

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}
	l := logger.L()

	// Подключение к базе и индексы.
	mongoConn, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	if err != nil {
		l.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(mongoConn, cfg)

	if err := db.EnsureIndexes(ctx, mongoConn.DB); err != nil {
		l.WithError(err).Fatal("main: ошибка создания индексов")
	}

	// Репозитории.
	repo := repository.New(mongoConn.DB)

	// Сервисы.
	geocoder := service.NewCachedGeocoder(ctx, repo.Zips, cfg.GeocoderCacheTTL)
	services := &service.Services{
		Categories: service.NewCategoryService(repo.Categories),
		Listings:   service.NewListingService(repo.Listings, repo.Users, repo.Categories, geocoder, cfg.ListingTTL),
		Sponsors:   service.NewSponsorService(repo.Sponsors, repo.Sponsors.Campaigns, repo.Categories),
		Reports:    service.NewReportService(repo.Reports, repo.Listings),
		Users:      service.NewUserService(repo.Users, cfg.ResetCooldown),
		Seed:       service.NewSeedService(repo.Categories, repo.Users, repo.Listings),
	}

	if cfg.SeedCategories {
		if _, err := services.Seed.SeedCategories(ctx); err != nil {
			l.WithError(err).Fatal("main: ошибка заполнения категорий")
		}
	}
	if cfg.SeedDemoUsers > 0 {
		if err := services.Seed.SeedDemo(ctx, int(cfg.SeedDemoUsers), demoListingsPerUser); err != nil {
			l.WithError(err).Fatal("main: ошибка заполнения демо-данных")
		}
	}

	// Служебный HTTP: health и метрики.
	engine := httpRouter.SetupRouter(cfg.Env, httpHandlers.NewHealthHandler(mongoConn))
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	goroutine.SafeGo("http-server", func() {
		l.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.WithError(err).Error("main: сервер завершился с ошибкой")
			stop()
		}
	})

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.WithError(err).Error("main: ошибка остановки http сервера")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(m *db.Mongo, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := m.Close(ctx); err != nil {
		logger.L().WithError(err).Error("main: ошибка закрытия базы")
	}
}
