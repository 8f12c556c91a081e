package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	to     string
	amount float64
)

type submitTx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

type submitResp struct {
	Status      string   `json:"status"`
	Transaction submitTx `json:"transaction"`
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Identity receiving the amount.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) error {
	if to == "" {
		return errors.New("recipient is required")
	}

	tx := submitTx{
		Sender:    accountName,
		Recipient: to,
		Amount:    amount,
	}

	var resp submitResp
	if err := call(http.MethodPost, "/v1/tx/submit", tx, &resp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s: %v\n", resp.Status, resp.Transaction.Sender, resp.Transaction.Recipient, resp.Transaction.Amount)
	return nil
}
