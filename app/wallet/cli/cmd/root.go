// Package cmd contains the wallet app.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"
)

var (
	accountName string
	url         string
	profilePath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "Alice", "Identity the wallet acts as.")
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Path to an ini file with a [wallet] section.")
}

var rootCmd = &cobra.Command{
	Use:               "wallet",
	Short:             "Your simple ledger wallet",
	SilenceUsage:      true,
	PersistentPreRunE: applyProfile,
}

// Execute runs the wallet. It only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

// profile holds wallet defaults read from disk.
type profile struct {
	Account string `ini:"account"`
	URL     string `ini:"url"`
}

func loadProfile(path string) (profile, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return profile{}, fmt.Errorf("load profile: %w", err)
	}

	var p profile
	if err := cfg.Section("wallet").MapTo(&p); err != nil {
		return profile{}, fmt.Errorf("map profile: %w", err)
	}

	return p, nil
}

// applyProfile fills in the values the user didn't set on the command line.
func applyProfile(cmd *cobra.Command, args []string) error {
	if profilePath == "" {
		return nil
	}

	p, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	if p.Account != "" && !cmd.Flags().Changed("account") {
		accountName = p.Account
	}
	if p.URL != "" && !cmd.Flags().Changed("url") {
		url = p.URL
	}

	return nil
}
