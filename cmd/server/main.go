package main

import (
	"context"
	"log"
	"net/http"

	"github.com/glasspack/api/internal/config"
	"github.com/glasspack/api/internal/database"
	"github.com/glasspack/api/internal/forex"
	"github.com/glasspack/api/internal/router"
	"github.com/glasspack/api/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.MustLoad()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	rates := forex.NewConverter(cfg.RatesURL, nil)
	go rates.Load(context.Background())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.New(cfg, queries, pool, hub, rates),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
