// Package commands contains the functionality for the admin tool.
package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/ardanlabs/powledger/foundation/blockchain/balance"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Balances prints the balances derived from the chain. When an account is
// specified only that account is printed.
func Balances(w io.Writer, chain []database.Block, account string) error {
	if len(chain) == 0 {
		return fmt.Errorf("empty chain")
	}

	fmt.Fprintf(w, "LatestBlockHash: %s\n\n", chain[len(chain)-1].Hash)

	sheet := balance.Derive(chain, nil)

	if account != "" {
		fmt.Fprintf(w, "Account: %s  Balance: %v\n", account, sheet.Balance(account))
		return nil
	}

	accounts := make([]string, 0, len(sheet))
	for act := range sheet {
		accounts = append(accounts, act)
	}
	sort.Strings(accounts)

	for _, act := range accounts {
		fmt.Fprintf(w, "Account: %s  Balance: %v\n", act, sheet[act])
	}

	return nil
}
