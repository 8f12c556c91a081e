// Package console implements the interactive menu used to drive a pair of
// in-process ledger nodes from a terminal.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

const menu = `
Menu:
1. Show chain
2. Show balances
3. Add transaction (%s -> %s %v)
4. Mine pending transactions
5. Simulate 51%% attack (attacker: %s)
6. Exit
Choice: `

// Config holds the identities the menu acts on.
type Config struct {
	Sender    string
	Recipient string
	Amount    float64
	Miner     string
	Attacker  string
}

// Console drives the local node. Transactions submitted locally are
// broadcast to the connected peers.
type Console struct {
	cfg  Config
	node *peer.Node
	in   *bufio.Scanner
	out  io.Writer
}

// New constructs a console for the local node.
func New(cfg Config, node *peer.Node, in io.Reader, out io.Writer) *Console {
	return &Console{
		cfg:  cfg,
		node: node,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run reads choices until the user exits, the input ends or the context
// is cancelled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Mini-Blockchain (demo)")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(c.out, menu, c.cfg.Sender, c.cfg.Recipient, c.cfg.Amount, c.cfg.Attacker)

		if !c.in.Scan() {
			return c.in.Err()
		}

		switch strings.TrimSpace(c.in.Text()) {
		case "1":
			if err := c.showChain(); err != nil {
				return err
			}

		case "2":
			if err := c.showBalances(); err != nil {
				return err
			}

		case "3":
			c.addTransaction()

		case "4":
			if err := c.mine(ctx); err != nil {
				return err
			}

		case "5":
			if err := c.attack(ctx); err != nil {
				return err
			}

		case "6":
			fmt.Fprintln(c.out, "Bye")
			return nil

		default:
			fmt.Fprintln(c.out, "Unknown choice")
		}
	}
}

// =============================================================================

func (c *Console) showChain() error {
	for _, block := range c.node.State.RetrieveChain() {
		data, err := json.Marshal(block)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, string(data))
	}

	return nil
}

func (c *Console) showBalances() error {
	data, err := json.Marshal(c.node.State.QueryBalances(true))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, string(data))
	return nil
}

func (c *Console) addTransaction() {
	tx, err := database.NewTx(c.cfg.Sender, c.cfg.Recipient, c.cfg.Amount)
	if err == nil {
		err = c.node.State.SubmitTransaction(tx)
	}

	if err != nil {
		fmt.Fprintln(c.out, "Failed to add transaction:", err)
		return
	}

	c.node.BroadcastTransaction(tx)
	fmt.Fprintln(c.out, "Transaction added to pending pool")
}

func (c *Console) mine(ctx context.Context) error {
	block, err := c.node.State.MineNewBlock(ctx, c.cfg.Miner)
	if err != nil {
		fmt.Fprintln(c.out, "Failed to mine block:", err)
		return nil
	}

	data, err := json.Marshal(block)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Mined block:", string(data))
	return nil
}

func (c *Console) attack(ctx context.Context) error {
	_, msg, err := c.node.State.SimulateAttack(ctx, c.cfg.Attacker)
	if err != nil {
		fmt.Fprintln(c.out, "Attack failed:", err)
		return nil
	}

	fmt.Fprintln(c.out, msg)
	return nil
}
