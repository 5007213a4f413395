package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ldelvaux/pcforge/internal/config"
	"github.com/ldelvaux/pcforge/internal/events"
	"github.com/ldelvaux/pcforge/internal/httpserver"
	"github.com/ldelvaux/pcforge/internal/logging"
	authmw "github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/repo"
	"github.com/ldelvaux/pcforge/internal/search"
	"github.com/ldelvaux/pcforge/internal/service"
	"github.com/ldelvaux/pcforge/pkg/db"
)

func main() {
	migratePasswords := flag.Bool("migrate-passwords", false, "flag legacy password digests for reset and exit")
	flag.Parse()

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.DATABASE_URL, "DATABASE_URL")

	logger := logging.New(configuration.LOG_LEVEL)
	ctx := logging.IntoContext(context.Background(), logger)

	gormDB, err := db.Open(ctx, configuration.DATABASE_URL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	repository := repo.New(gormDB)
	if err := repository.Migrate(ctx); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = search.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
	}

	authSvc := &service.AuthService{Repo: repository, JWTSecret: jwtSecret, Producer: producer}

	if *migratePasswords {
		n, err := authSvc.MigrateLegacyDigests(ctx)
		if err != nil {
			log.Fatalf("digest migration error: %v", err)
		}
		log.Printf("flagged %d legacy password digests", n)
		return
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{configuration.CORS_ORIGIN},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Auth:  authSvc,
			Users: &service.UserService{Repo: repository},
		},
		Users:          &httpserver.UserHTTP{Svc: &service.UserService{Repo: repository}},
		Components:     &httpserver.ComponentHTTP{Svc: &service.CatalogService{Repo: repository, Producer: producer, ES: esClient, Index: search.ComponentIndex}},
		Configurations: &httpserver.ConfigurationHTTP{Svc: &service.ConfigurationService{Repo: repository}},
		Addresses:      &httpserver.AddressHTTP{Svc: &service.AddressService{Repo: repository}},
		Orders:         &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: repository, Producer: producer}},
		Search:         &httpserver.SearchHTTP{ES: esClient, Index: search.ComponentIndex},
		Tokens:         &authmw.TokenService{JWTSecret: jwtSecret},
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
