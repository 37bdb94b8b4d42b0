// Dashboard service: performs the one-shot CSV load at startup and
// serves the fraud dashboard (HTML page, JSON API, chart image).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"frauddash/internal/handler"
	"frauddash/internal/ingest"
	"frauddash/internal/middleware"
	"frauddash/internal/report"
	"frauddash/internal/source"
	"frauddash/pkg/config"
	"frauddash/pkg/logger"
	"frauddash/pkg/money"
)

func main() {
	// .env is optional; real environment variables still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("dashboard-service")

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting Dashboard Service", map[string]interface{}{
		"port":       cfg.Server.Port,
		"csv_source": cfg.Source.Location,
	})

	// Optional summary cache.
	var cache report.SummaryCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, summary cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = report.NewRedisSummaryCache(redisClient, cfg.Redis.CacheTTL)
		}
	}

	store := report.NewStore(cache, log)

	// One-shot load. A failure here is terminal: the store keeps serving
	// the error panel and nothing is retried.
	loadDataset(store, cfg, log)

	formatter := money.NewFormatter(cfg.Display.Locale, cfg.Display.CurrencySymbol)
	dashboardHandler := handler.NewDashboardHandler(store, formatter, log)

	r := mux.NewRouter()

	r.Use(middleware.NewCORSMiddleware(cfg.Server.CORSAllowedOrigins).Handle)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(log).Log)

	r.HandleFunc("/health", dashboardHandler.Health).Methods("GET")
	r.HandleFunc("/", dashboardHandler.GetPage).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/dashboard/summary", dashboardHandler.GetSummary).Methods("GET")
	api.HandleFunc("/dashboard/transactions", dashboardHandler.GetTransactions).Methods("GET")
	api.HandleFunc("/dashboard/transactions/next", dashboardHandler.NextPage).Methods("POST")
	api.HandleFunc("/dashboard/transactions/prev", dashboardHandler.PrevPage).Methods("POST")
	api.HandleFunc("/dashboard/chart/fraud-by-location.png", dashboardHandler.GetFraudChart).Methods("GET")

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Dashboard service started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down dashboard service...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Dashboard service forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Dashboard service stopped gracefully", nil)
}

// loadDataset fetches and parses the CSV once, populating the store or
// putting it into its terminal error state.
func loadDataset(store *report.Store, cfg *config.Config, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.FetchTimeout)
	defer cancel()

	src := source.ForLocation(cfg.Source.Location, nil)
	text, err := src.Fetch(ctx)
	if err != nil {
		store.Fail(err.Error())
		return
	}

	dataset, err := ingest.ParseTransactions(text)
	if err != nil {
		store.Fail(err.Error())
		return
	}

	store.Load(dataset)
}
