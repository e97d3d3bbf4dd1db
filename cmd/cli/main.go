package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// bcryptGenerate is swapped in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "bankctl",
		Short:         "BankLedger CLI tool",
		Long:          `A command line interface for interacting with the BankLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the BankLedger API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("BANKLEDGER_TOKEN"), "Bearer token (defaults to $BANKLEDGER_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(opts),
		loginCmd(opts),
		accountsCmd(opts),
		statementCmd(opts),
		ledgerCmd(opts),
		demoCmd(),
		hashPasswordCmd(),
	)

	return rootCmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
