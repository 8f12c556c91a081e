package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var confirmedOnly bool

type balance struct {
	Account        string  `json:"account"`
	Balance        float64 `json:"balance"`
	IncludePending bool    `json:"include_pending"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().BoolVarP(&confirmedOnly, "confirmed", "c", false, "Ignore pending transactions.")
}

func balanceRun(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("/v1/balances/%s?pending=%t", accountName, !confirmedOnly)

	var b balance
	if err := call(http.MethodGet, path, nil, &b); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", b.Account, b.Balance)
	return nil
}
