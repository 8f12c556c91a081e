// This program performs administrative tasks against a chain exported from
// a node's GET /v1/chain endpoint.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/powledger/app/tooling/admin/commands"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN", "stderr")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	if len(os.Args) < 3 {
		return errors.New("usage: admin <bals|trans|validate> <chain.json> [account]")
	}

	chain, err := load(os.Args[2])
	if err != nil {
		return err
	}

	log.Infow("admin", "build", build, "command", os.Args[1], "blocks", len(chain))

	return processCommands(os.Args, chain)
}

func load(path string) ([]database.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chain []database.Block
	if err := json.NewDecoder(f).Decode(&chain); err != nil {
		return nil, fmt.Errorf("decoding chain: %w", err)
	}

	return chain, nil
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args []string, chain []database.Block) error {
	var account string
	if len(args) > 3 {
		account = args[3]
	}

	switch args[1] {
	case "bals":
		if err := commands.Balances(os.Stdout, chain, account); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}
	case "trans":
		if err := commands.Transactions(os.Stdout, chain, account); err != nil {
			return fmt.Errorf("getting transaction: %w", err)
		}
	case "validate":
		if err := commands.Validate(os.Stdout, chain); err != nil {
			return fmt.Errorf("validating chain: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q", args[1])
	}

	return nil
}
