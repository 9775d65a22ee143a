package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	api "github.com/emotrack/emotrack-go/internal/api/http"
	"github.com/emotrack/emotrack-go/internal/assessment"
	auth "github.com/emotrack/emotrack-go/internal/auth/middleware"
	"github.com/emotrack/emotrack-go/internal/config"
	"github.com/emotrack/emotrack-go/internal/db"
	"github.com/emotrack/emotrack-go/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	users := user.NewSQLStore(dbh)
	svc := assessment.NewService(assessment.NewSQLStore(dbh))
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	r := api.NewRouter(users, svc, authSvc, cfg.CORSOrigins)

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
