package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/urfave/cli/v2"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"osrsgoals/database"
	"osrsgoals/internal/api"
	"osrsgoals/internal/config"
	"osrsgoals/internal/handlers"
	"osrsgoals/internal/repository"
	"osrsgoals/internal/service"
)

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := api.NewOSRSClient(cfg.HiscoreURL, cfg.CatalogueURL, cfg.HTTPTimeout)

	var goals *service.GoalService
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run repository migrations: %w", err)
		}
		goals = service.NewGoalService(repository.NewGoalRepository(db), client)
	} else {
		log.Println("[WARN] OSRS_DATABASE_URL not set, goal tracking is disabled")
	}

	router := handlers.NewRouter(service.NewLookupService(client), goals)
	handler := handlers.WithCORS(router, cfg.AllowedOrigins)

	if cfg.Ngrok {
		tun, err := ngrok.Listen(c.Context, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtokenFromEnv())
		if err != nil {
			return fmt.Errorf("start ngrok tunnel: %w", err)
		}
		log.Println("[INFO] serving through ngrok at", tun.URL())
		return http.Serve(tun, handler)
	}

	log.Println("[INFO] server listening on port", cfg.ServerPort)
	return http.ListenAndServe(":"+cfg.ServerPort, handler)
}
