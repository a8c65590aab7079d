package service

import (
	"context"
	"log"

	"osrsgoals/internal/api"
)

// OSRSAPI is the subset of api.OSRSClient the services call.
type OSRSAPI interface {
	LookupPlayer(ctx context.Context, playerName string) ([]api.Skill, error)
	SearchItems(ctx context.Context, letter string) ([]api.Item, error)
}

// LookupService exposes the two lookups to the command layer.
type LookupService struct {
	client OSRSAPI
}

func NewLookupService(client OSRSAPI) *LookupService {
	return &LookupService{client: client}
}

// LookupPlayer returns the player's skills as reported by the hiscores.
func (s *LookupService) LookupPlayer(ctx context.Context, playerName string) ([]api.Skill, error) {
	skills, err := s.client.LookupPlayer(ctx, playerName)
	if err != nil {
		log.Printf("[ERROR] lookup_player %q (%s): %v", playerName, api.Kind(err), err)
		return nil, err
	}
	return skills, nil
}

// SearchItems returns the first catalogue page for letter.
func (s *LookupService) SearchItems(ctx context.Context, letter string) ([]api.Item, error) {
	items, err := s.client.SearchItems(ctx, letter)
	if err != nil {
		log.Printf("[ERROR] search_items %q (%s): %v", letter, api.Kind(err), err)
		return nil, err
	}
	return items, nil
}
