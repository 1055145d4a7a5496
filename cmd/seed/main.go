package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/PPanwar29/Streamify/config"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

type seedUser struct {
	fullname string
	email    string
	native   string
	learning string
	location string
	avatar   int
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := []seedUser{
		{"Alice Moreau", "alice@example.com", "French", "English", "Lyon, France", 7},
		{"Kenji Tanaka", "kenji@example.com", "Japanese", "Spanish", "Osaka, Japan", 23},
		{"Maria Silva", "maria@example.com", "Portuguese", "German", "Porto, Portugal", 41},
	}

	for _, su := range users {
		avatar := fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", su.avatar)
		var id string
		err := db.QueryRow(`
			INSERT INTO users (fullname, email, password_hash, profile_pic,
				native_language, learning_language, location, is_onboarded, bio)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, 'Hi, let''s practice together!')
			ON CONFLICT (email) DO UPDATE SET fullname = EXCLUDED.fullname
			RETURNING id
		`, su.fullname, su.email, hash, avatar, su.native, su.learning, su.location).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", su.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=password123\n", id, su.email)
	}
}
