package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/powledger/app/tooling/sim/console"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {
	cfg := struct {
		conf.Version
		Log struct {
			Path string `conf:"default:stderr"`
		}
		State struct {
			GenesisPath  string  `conf:"default:zblock/genesis.yaml"`
			Difficulty   uint    `conf:"help:overrides the genesis file when not zero"`
			MiningReward float64 `conf:"help:overrides the genesis file when not zero"`
		}
		Menu struct {
			Sender    string  `conf:"default:Alice"`
			Recipient string  `conf:"default:Bob"`
			Amount    float64 `conf:"default:10"`
			Miner     string  `conf:"default:Miner"`
			Attacker  string  `conf:"default:Mallory"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "proof of work ledger simulator",
		},
	}

	const prefix = "SIM"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		fmt.Println("parsing config:", err)
		os.Exit(1)
	}

	log, err := logger.New("SIM", cfg.Log.Path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	gen := genesis.Default()
	if cfg.State.GenesisPath != "" {
		if gen, err = genesis.Load(cfg.State.GenesisPath); err != nil {
			log.Errorw("startup", "ERROR", err)
			os.Exit(1)
		}
	}
	if cfg.State.Difficulty != 0 {
		gen.Difficulty = cfg.State.Difficulty
	}
	if cfg.State.MiningReward != 0 {
		gen.MiningReward = cfg.State.MiningReward
	}

	menu := console.Config{
		Sender:    cfg.Menu.Sender,
		Recipient: cfg.Menu.Recipient,
		Amount:    cfg.Menu.Amount,
		Miner:     cfg.Menu.Miner,
		Attacker:  cfg.Menu.Attacker,
	}

	if err := run(log, gen, menu); err != nil {
		log.Errorw("sim", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger, gen genesis.Genesis, menu console.Config) error {
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	// Each node keeps its own ledger. Node A takes the menu actions and
	// shares transactions with node B.
	nodes := make([]*peer.Node, 2)
	for i, name := range []string{"A", "B"} {
		st, err := state.New(state.Config{
			Genesis:   gen,
			EvHandler: ev,
		})
		if err != nil {
			return fmt.Errorf("node %s: %w", name, err)
		}
		nodes[i] = peer.New(name, st, ev)
	}
	nodes[0].Connect(nodes[1])

	return console.New(menu, nodes[0], os.Stdin, os.Stdout).Run(context.Background())
}
