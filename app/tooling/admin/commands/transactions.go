package commands

import (
	"fmt"
	"io"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Transactions prints every transaction in the chain. When an account is
// specified only the transactions it sent or received are printed.
func Transactions(w io.Writer, chain []database.Block, account string) error {
	for _, block := range chain {
		for i, tx := range block.Transactions {
			if account != "" && tx.Sender != account && tx.Recipient != account {
				continue
			}

			fmt.Fprintf(w, "Block: %d  Tx: %d  From: %s  To: %s  Amount: %v\n",
				block.Index, i, tx.Sender, tx.Recipient, tx.Amount)
		}
	}

	return nil
}

// Validate recomputes the hashes of the chain and prints the first block
// that doesn't match.
func Validate(w io.Writer, chain []database.Block) error {
	ev := func(v string, args ...any) {}

	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], ev); err != nil {
			if ie := database.GetIntegrityError(err); ie != nil {
				fmt.Fprintln(w, ie.Error())
				return nil
			}
			return err
		}
	}

	fmt.Fprintln(w, "chain is valid")
	return nil
}
