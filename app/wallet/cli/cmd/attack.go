package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var attacker string

var attackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Run the majority attack simulation on the node.",
	RunE:  attackRun,
}

func init() {
	rootCmd.AddCommand(attackCmd)
	attackCmd.Flags().StringVar(&attacker, "attacker", "Mallory", "Identity mounting the attack.")
}

func attackRun(cmd *cobra.Command, args []string) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := call(http.MethodPost, "/v1/attack", map[string]string{"attacker": attacker}, &resp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "success: %t, %s\n", resp.Success, resp.Message)
	return nil
}
