// Command issue-token prints a bearer token for an editor, signed with the
// configured secret. It is meant for local development and smoke tests.
//
// Usage:
//
//	issue-token --editor=<editor id> [--email=ed@school.example] [--config=config.yaml]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/heartmarshall/gradbook-backend/internal/auth"
	"github.com/heartmarshall/gradbook-backend/internal/config"
	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

func main() {
	editorID := flag.String("editor", "", "editor id (token subject)")
	email := flag.String("email", "", "editor email")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	if *editorID == "" {
		fmt.Fprintln(os.Stderr, "Usage: issue-token --editor=<editor id> [--email=<email>]")
		os.Exit(1)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	token, err := tokens.GenerateAccessToken(ctxutil.Editor{ID: *editorID, Email: *email})
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
