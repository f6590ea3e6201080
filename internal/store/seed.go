package store

import (
	"context"
	"fmt"
	"os"

	"github.com/go-authgate/tokenguard/internal/models"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML document loaded by SEED_FILE.
//
//	clients:
//	  - client_id: roclient
//	    name: Resource Owner Client
//	    scopes: read write
//	    active: true
//	users:
//	  - id: "818727"
//	    username: alice
//	    email: alice@example.com
//	    active: true
type Seed struct {
	Clients []models.Client `yaml:"clients"`
	Users   []models.User   `yaml:"users"`
}

// LoadSeed parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed upserts every client and user in seed.
func (s *Store) ApplySeed(ctx context.Context, seed *Seed) error {
	for i := range seed.Clients {
		if err := s.UpsertClient(ctx, &seed.Clients[i]); err != nil {
			return fmt.Errorf("seed client %s: %w", seed.Clients[i].ClientID, err)
		}
	}
	for i := range seed.Users {
		if err := s.UpsertUser(ctx, &seed.Users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Users[i].Username, err)
		}
	}
	return nil
}
