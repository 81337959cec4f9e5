// Command backfill-order assigns a roster position to every student that
// has none, after the graduation's highest existing position.
//
// Usage:
//
//	backfill-order
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/student"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	n, err := student.New(pool).BackfillOrder(ctx)
	if err != nil {
		log.Fatalf("backfill order: %v", err)
	}

	fmt.Printf("Assigned a roster position to %d students.\n", n)
}
