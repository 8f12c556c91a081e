// Package genesis maintains access to the chain parameters the ledger is
// started with.
package genesis

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Set of default chain parameters.
const (
	DefaultDifficulty   = 3
	DefaultMiningReward = 50
)

// Genesis represents the chain parameters.
type Genesis struct {
	Difficulty   uint    `yaml:"difficulty" json:"difficulty"`       // Number of leading hex zeros a block hash needs.
	MiningReward float64 `yaml:"mining_reward" json:"mining_reward"` // Amount issued to the miner of a block.
	MaxAttempts  uint64  `yaml:"max_attempts" json:"max_attempts"`   // Nonce attempts before mining gives up, zero for no limit.
}

// Default returns the chain parameters used when no file is provided.
func Default() Genesis {
	return Genesis{
		Difficulty:   DefaultDifficulty,
		MiningReward: DefaultMiningReward,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file
// keep their default.
func Load(path string) (Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("open genesis: %w", err)
	}
	defer f.Close()

	file := struct {
		Genesis Genesis `yaml:"genesis"`
	}{
		Genesis: Default(),
	}

	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return Genesis{}, fmt.Errorf("decode genesis: %w", err)
	}

	if err := file.Genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return file.Genesis, nil
}

// Validate checks the chain parameters can be used to mine blocks.
func (g Genesis) Validate() error {
	if g.Difficulty > 64 {
		return fmt.Errorf("difficulty %d is larger than the hash", g.Difficulty)
	}

	if !(g.MiningReward > 0) {
		return errors.New("mining reward must be positive")
	}

	return nil
}
