package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/config"
	"github.com/opsdesk-dev/status-board/backend/internal/repository"
	"github.com/opsdesk-dev/status-board/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var days int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random staff with users, 2: insert baseline contract entries, 3: insert random adjustment entries)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.IntVar(&days, "days", 7, "number of days to cover when seeding contract entries")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// create the database connection pool
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not touch the database,
	// so ping explicitly before seeding
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to the database", "error", err)
		return
	}

	// create the repository
	repo := repository.NewRepository(cfg, dbpool)

	// run the requested operation
	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please pass a valid staff count")
		} else {
			cnt := seed.SeedStaff(cfg, repo, n)
			slog.Info("inserted staff members", slog.Int("count", cnt))
		}
	case 2:
		if days <= 0 {
			slog.Error("please pass a valid day count")
		} else {
			cnt := seed.SeedContractEntries(repo, days)
			slog.Info("inserted contract entries", slog.Int("count", cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("please pass a valid entry count")
		} else {
			cnt := seed.SeedAdjustmentEntries(repo, n)
			slog.Info("inserted adjustment entries", slog.Int("count", cnt))
		}
	default:
		slog.Error("unknown operation")
	}
}
