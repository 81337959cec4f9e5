// Command add-editor grants an editor access to a graduation. It is used to
// hand a graduation over when no current editor can do it from the app.
//
// Usage:
//
//	add-editor --graduation=class-2026 --editor=<editor id>
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/gradbook-backend/internal/adapter/postgres/graduation"
	"github.com/heartmarshall/gradbook-backend/internal/domain"
)

func main() {
	graduationID := flag.String("graduation", "", "graduation id")
	editorID := flag.String("editor", "", "editor id to grant access to")
	flag.Parse()

	if *graduationID == "" || *editorID == "" {
		fmt.Fprintln(os.Stderr, "Usage: add-editor --graduation=<id> --editor=<editor id>")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	err = graduation.New(pool).AddEditor(ctx, *graduationID, *editorID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Printf("No graduation with id %q.\n", *graduationID)
		os.Exit(1)
	case err != nil:
		log.Fatalf("add editor: %v", err)
	}

	fmt.Printf("Editor %q can now edit graduation %q.\n", *editorID, *graduationID)
}
