package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chorehub/chorehub/internal/api"
	"github.com/chorehub/chorehub/internal/auth"
	"github.com/chorehub/chorehub/internal/middleware"
	"github.com/chorehub/chorehub/internal/service"
	"github.com/chorehub/chorehub/internal/storage/sqlite"
	"github.com/chorehub/chorehub/pkg/logging"
)

const (
	defaultPort   = "8080"
	tokenDuration = 24 * time.Hour
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/chorehub.db")
	port := getEnv("PORT", defaultPort)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	auths := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	groups := service.NewGroupService(store)
	events := service.NewEventService(store)
	costs := service.NewCostService(store)

	handler := api.NewHandler(auths, groups, events, costs, jwtManager)

	mux := handler.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	chained := middleware.Logging(middleware.Metrics(corsMiddleware(mux)))

	// Wrap with h2c so HTTP/2 clients work without TLS
	h2cHandler := h2c.NewHandler(chained, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
