package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/contasclaras/api/config"
	"github.com/contasclaras/api/pkg/helpers"
)

// Seeds the admin account and the default bill categories. Safe to run
// repeatedly; everything upserts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, is_admin)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_admin = TRUE
		RETURNING id
	`, cfg.AdminEmail, hash, "Administrador").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", adminID, cfg.AdminEmail)

	defaults := []string{
		"Aluguel",
		"Água",
		"Luz",
		"Internet",
		"Telefone",
		"Mercado",
		"Transporte",
		"Saúde",
		"Educação",
		"Outros",
	}
	for _, name := range defaults {
		if _, err := db.Exec(`
			INSERT INTO categories (user_id, name)
			VALUES ($1, $2)
			ON CONFLICT (user_id, name) DO NOTHING
		`, adminID, name); err != nil {
			log.Fatalf("failed to seed category %q: %v", name, err)
		}
	}
	fmt.Printf("ensured %d default categories\n", len(defaults))
}
