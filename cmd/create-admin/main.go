// Command create-admin inserts an admin account directly into the database.
// It is used to bootstrap the first admin, after which further accounts are
// registered through the API.
//
// Usage:
//
//	create-admin --email=admin@example.com --password=changeme
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "email of the admin account")
	password := flag.String("password", "", "password of the admin account (min 8 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: create-admin --email=admin@example.com --password=changeme")
		os.Exit(1)
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES ($1, $2, 'admin') ON CONFLICT (email) DO NOTHING",
		*email, string(hash),
	)
	if err != nil {
		log.Fatalf("insert admin: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("User %q already exists, nothing done.\n", *email)
		os.Exit(1)
	}

	fmt.Printf("Admin %q created.\n", *email)
}
