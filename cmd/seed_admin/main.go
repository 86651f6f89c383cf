// seed_admin creates the first administrator account so the staff API can be used.
// Usage: from project root, run: go run ./cmd/seed_admin -email admin@municipalidad.cl
// The password comes from -password or SEED_ADMIN_PASSWORD. Requires .env (or env) with DB_*.
package main

import (
	"context"
	"denuncias/apperr"
	"denuncias/config"
	"denuncias/database"
	"denuncias/logger"
	"denuncias/models"
	"denuncias/schema"
	"denuncias/service"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "administrator email")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "administrator password (min 6 chars)")
	firstName := flag.String("first-name", "Administrador", "first name")
	flag.Parse()

	cfg := config.LoadConfig()
	logr := logger.New("seed_admin", cfg.Log.Level, cfg.Log.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dialect, dsn, err := cfg.Database.DSN()
	if err != nil {
		log.Fatalf("DB config: %v", err)
	}
	db, err := database.Open(ctx, dialect, dsn, 1)
	if err != nil {
		log.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := schema.InitializeDatabase(ctx, db, logr); err != nil {
		log.Fatalf("Schema: %v", err)
	}

	staff := service.NewStaffService(db, service.NewTokenIssuer(cfg.Auth.JWTSecret, time.Hour), nil, logr)
	user, err := staff.Register(ctx, &models.RegisterStaffRequest{
		FirstName: *firstName,
		Email:     *email,
		Password:  *password,
		Role:      models.RoleAdministrator,
	})
	switch {
	case apperr.Is(err, apperr.KindConflict):
		log.Printf("Administrator %s already exists, nothing to do", *email)
		return
	case err != nil:
		log.Fatalf("Seed failed: %s", apperr.PublicMessage(err))
	}
	log.Printf("Administrator created: id=%d email=%s", user.ID, user.Email)
}
