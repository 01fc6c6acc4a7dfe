package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"booksale/internal/config"
	apphttp "booksale/internal/http"
	"booksale/internal/httpx"
	"booksale/internal/store"
	"booksale/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.MustLoad()

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	sellerRepository := store.NewSellerPG(dbPool)
	bookRepository := store.NewBookPG(dbPool)

	router := newRouter(sellerRepository, bookRepository)

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s (env=%s)", cfg.Addr, cfg.Env)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// newRouter wires the seller and book endpoints. Anything unmatched falls
// through to the "Not found!" catch-all.
func newRouter(sellers usecase.SellerRepository, books usecase.BookRepository) *http.ServeMux {
	sellerHandler := apphttp.NewSellerHandler(sellers)
	bookHandler := apphttp.NewBookHandler(books)

	router := http.NewServeMux()

	router.HandleFunc("POST /seller/{$}", sellerHandler.Register)
	router.HandleFunc("GET /seller/{$}", sellerHandler.List)
	router.HandleFunc("GET /seller/{id}", sellerHandler.GetByID)
	router.HandleFunc("PUT /seller/{id}", sellerHandler.Update)
	router.HandleFunc("DELETE /seller/{id}", sellerHandler.Delete)

	router.HandleFunc("POST /book/{$}", bookHandler.Create)

	router.HandleFunc("/", apphttp.NotFoundRoute)

	return router
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
