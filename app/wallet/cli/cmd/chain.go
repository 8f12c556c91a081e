package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the blocks of the chain.",
	RunE:  chainRun,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ask the node to validate its chain.",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(validateCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	var chain []block
	if err := call(http.MethodGet, "/v1/chain", nil, &chain); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, b := range chain {
		fmt.Fprintf(w, "Block %d\n", b.Index)
		fmt.Fprintf(w, "  Hash:     %s\n", b.Hash)
		fmt.Fprintf(w, "  Previous: %s\n", b.PreviousHash)
		fmt.Fprintf(w, "  Merkle:   %s\n", b.MerkleRoot)
		fmt.Fprintf(w, "  Nonce:    %d\n", b.Nonce)
		for _, tx := range b.Transactions {
			fmt.Fprintf(w, "    %s -> %s: %v\n", tx.Sender, tx.Recipient, tx.Amount)
		}
	}

	return nil
}

func validateRun(cmd *cobra.Command, args []string) error {
	var v validation
	if err := call(http.MethodGet, "/v1/chain/validate", nil, &v); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), v.Message)
	return nil
}
