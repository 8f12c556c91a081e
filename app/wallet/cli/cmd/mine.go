package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type block struct {
	Index        uint64     `json:"index"`
	PreviousHash string     `json:"previous_hash"`
	Transactions []submitTx `json:"transactions"`
	Nonce        uint64     `json:"nonce"`
	Timestamp    float64    `json:"timestamp"`
	MerkleRoot   string     `json:"merkle_root"`
	Hash         string     `json:"hash"`
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions, paying the reward to your account.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	var b block
	if err := call(http.MethodPost, "/v1/mine", map[string]string{"miner": accountName}, &b); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mined block %d: %s (%d transactions)\n", b.Index, b.Hash, len(b.Transactions))
	return nil
}
