package balance_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/balance"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func block(txs ...database.Tx) database.Block {
	return database.Block{Transactions: txs}
}

func TestDerive(t *testing.T) {
	type table struct {
		name    string
		blocks  []database.Block
		pending []database.Tx
		final   balance.Sheet
	}

	tt := []table{
		{
			name:   "genesis",
			blocks: []database.Block{block()},
			final:  balance.Sheet{},
		},
		{
			name: "basic",
			blocks: []database.Block{
				block(),
				block(database.NewCoinbaseTx("Alice", 50)),
				block(database.NewCoinbaseTx("Miner", 50), database.Tx{Sender: "Alice", Recipient: "Bob", Amount: 10}),
			},
			final: balance.Sheet{
				"Alice": 40,
				"Bob":   10,
				"Miner": 50,
			},
		},
		{
			name: "pending",
			blocks: []database.Block{
				block(database.NewCoinbaseTx("Alice", 50)),
			},
			pending: []database.Tx{
				{Sender: "Alice", Recipient: "Bob", Amount: 20},
				{Sender: "Bob", Recipient: "Carol", Amount: 5},
			},
			final: balance.Sheet{
				"Alice": 30,
				"Bob":   15,
				"Carol": 5,
			},
		},
		{
			name: "unconditional",
			blocks: []database.Block{
				block(database.Tx{Sender: "Alice", Recipient: "Bob", Amount: 10}),
			},
			final: balance.Sheet{
				"Alice": -10,
				"Bob":   10,
			},
		},
		{
			name: "paid-to-coinbase",
			blocks: []database.Block{
				block(database.NewCoinbaseTx("Alice", 50), database.Tx{Sender: "Alice", Recipient: database.Coinbase, Amount: 5}),
			},
			final: balance.Sheet{
				"Alice":           45,
				database.Coinbase: 5,
			},
		},
	}

	t.Log("Given the need to derive balances from the chain.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s chain.", testID, tst.name)
			{
				f := func(t *testing.T) {
					sheet := balance.Derive(tst.blocks, tst.pending)

					if len(sheet) != len(tst.final) {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, sheet)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.final)
						t.Fatalf("\t%s\tTest %d:\tShould have the same set of accounts.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould have the same set of accounts.", success, testID)

					for account, value := range tst.final {
						if got := sheet.Balance(account); got != value {
							t.Errorf("\t%s\tTest %d:\tShould have correct balance for %s.", failed, testID, account)
							t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, got)
							t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, value)
						} else {
							t.Logf("\t%s\tTest %d:\tShould have correct balance for %s.", success, testID, account)
						}
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestDeriveBlockOrder(t *testing.T) {
	b1 := block(database.NewCoinbaseTx("Alice", 50))
	b2 := block(database.NewCoinbaseTx("Bob", 50), database.Tx{Sender: "Alice", Recipient: "Bob", Amount: 10})
	b3 := block(database.Tx{Sender: "Bob", Recipient: "Carol", Amount: 30})

	t.Log("Given the need to replay blocks in any order.")
	{
		t.Logf("\tTest 0:\tWhen the blocks are replayed in reverse.")
		{
			forward := balance.Derive([]database.Block{b1, b2, b3}, nil)
			reverse := balance.Derive([]database.Block{b3, b2, b1}, nil)

			for account, value := range forward {
				if reverse.Balance(account) != value {
					t.Fatalf("\t%s\tTest 0:\tShould get the same balance for %s.", failed, account)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould get the same balances.", success)

			cpy := forward.Copy()
			cpy["Alice"] = 0
			if forward.Balance("Alice") != 40 {
				t.Fatalf("\t%s\tTest 0:\tShould not share memory with a copy.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not share memory with a copy.", success)
		}
	}
}
