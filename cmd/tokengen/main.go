// Command tokengen mints a signed token for an existing user, for use
// with websocket clients during development and testing.
package main

import (
	"flag"
	"log"
	"time"

	"chat-relay/auth"
	"chat-relay/repositories"
	"chat-relay/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	dbPath := flag.String("db", "", "path to the badger store")
	secret := flag.String("secret", "", "JWT signing secret (must match the server)")
	username := flag.String("user", "", "username to mint a token for")
	duration := flag.Duration("duration", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *dbPath == "" || *secret == "" || *username == "" {
		log.Fatal("usage: tokengen -db <path> -secret <secret> -user <username>")
	}

	// Read-only open: BypassLockGuard allows peeking while the server
	// holds the directory lock.
	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	logger := logs.GetLoggerFromString("WARN")
	users := repositories.NewUserRepository(storage.New(db, logger), logger)

	user, err := users.ByUsername(*username)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}

	gate := auth.NewGate(auth.Config{Secret: []byte(*secret), TokenDuration: *duration})
	token, err := gate.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Fatalf("Token generation failed: %v", err)
	}

	color.Green.Printf("Token for %s (id %s), valid %s:\n", user.Username, user.ID, *duration)
	color.Cyan.Println(token)
}
