package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/mytheresa/go-assortment/app/config"
	"github.com/mytheresa/go-assortment/app/logging"
	"github.com/mytheresa/go-assortment/app/seed"
)

func main() {
	dir := flag.String("dir", "sql", "directory with the .sql files to execute")
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	if err := run(*dir, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dir, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open postgres: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	return seed.Run(ctx, db, os.DirFS(dir), log)
}
