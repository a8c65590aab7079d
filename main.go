package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"osrsgoals/internal/api"
	"osrsgoals/internal/config"
	"osrsgoals/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "osrsgoals",
		Usage: "Old School RuneScape hiscore lookups, item search and goal tracking",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API used by the desktop app",
				Action: serve,
			},
			{
				Name:      "lookup",
				Usage:     "print a player's skills as JSON",
				ArgsUsage: "<player name>",
				Action:    lookupPlayer,
			},
			{
				Name:      "items",
				Usage:     "print the catalogue items starting with a letter as JSON",
				ArgsUsage: "<letter>",
				Action:    searchItems,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLookupService() (*service.LookupService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := api.NewOSRSClient(cfg.HiscoreURL, cfg.CatalogueURL, cfg.HTTPTimeout)
	return service.NewLookupService(client), nil
}

func lookupPlayer(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: osrsgoals lookup <player name>", 2)
	}

	svc, err := newLookupService()
	if err != nil {
		return err
	}

	skills, err := svc.LookupPlayer(c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printJSON(skills)
}

func searchItems(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: osrsgoals items <letter>", 2)
	}

	svc, err := newLookupService()
	if err != nil {
		return err
	}

	items, err := svc.SearchItems(c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printJSON(items)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
