package services

import (
	"context"
	"fmt"
	"os"

	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// SeedDAO is one organization listed in a seed file.
type SeedDAO struct {
	model.CreateDAORequest `yaml:",inline"`
	Creator                string `yaml:"creator"`
	StartingBalance        string `yaml:"starting_balance"`
}

// Seed is the file read at startup to bootstrap an empty registry.
type Seed struct {
	DAOs []SeedDAO `yaml:"daos"`
}

// LoadSeed parses a yaml seed file.
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return seed, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}

// ApplySeed creates the seed DAOs when no DAO exists yet and returns how many
// were created. The attached value of each creation equals its starting
// balance.
func (s *GovernanceService) ApplySeed(ctx context.Context, seed Seed) (int, error) {
	if s.Registry.Count() > 0 {
		s.logger.Info("registry not empty, skipping seed")
		return 0, nil
	}

	created := 0
	for _, d := range seed.DAOs {
		req := d.CreateDAORequest
		req.InitialMembers = util.NormalizeIdentities(req.InitialMembers)
		req.StartingBalance = decimal.Zero
		if d.StartingBalance != "" {
			amount, err := decimal.NewFromString(d.StartingBalance)
			if err != nil {
				return created, fmt.Errorf("seed dao %s: starting_balance: %w", req.ID, err)
			}
			req.StartingBalance = amount
		}
		req.Value = req.StartingBalance

		creator := util.NormalizeIdentity(d.Creator)
		if creator == "" {
			return created, fmt.Errorf("seed dao %s: creator is required", req.ID)
		}
		if _, err := s.CreateDAO(ctx, creator, req); err != nil {
			return created, fmt.Errorf("seed dao %s: %w", req.ID, err)
		}
		created++
	}

	s.logger.Info("seed applied", zap.Int("daos", created))
	return created, nil
}
