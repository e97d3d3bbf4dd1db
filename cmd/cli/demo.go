package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/bankledger/internal/adapter/printer"
	"github.com/iho/bankledger/internal/app"
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/config"
	"github.com/iho/bankledger/internal/usecase"
)

type demoStep struct {
	day     time.Time
	label   string
	amount  string
	deposit bool
}

var demoScript = []demoStep{
	{time.Date(2012, 1, 10, 9, 0, 0, 0, time.UTC), "Depositing 1000...", "1000", true},
	{time.Date(2012, 1, 13, 9, 0, 0, 0, time.UTC), "Depositing 2000...", "2000", true},
	{time.Date(2012, 1, 14, 9, 0, 0, 0, time.UTC), "Withdrawing 500...", "500", false},
}

var demoFailures = []demoStep{
	{label: "Trying to withdraw more than balance...", amount: "5000"},
	{label: "Trying to deposit zero...", amount: "0", deposit: true},
	{label: "Trying to deposit negative amount...", amount: "-100", deposit: true},
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted deposit/withdraw/print session against in-memory storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runDemo(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	clock := domain.NewManualClock(demoScript[0].day)
	a, err := app.New(ctx, &config.Config{
		Storage:        config.StorageMemory,
		JWTSecret:      "demo",
		JWTExpiration:  time.Hour,
		SaveMaxRetries: 1,
	}, zerolog.Nop(), app.Options{
		Clock:    clock,
		Printer:  printer.NewConsole(out),
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	reg, err := a.Auth.Register(ctx, usecase.RegisterInput{Phone: "+10000000000", Password: "demo-password", Name: "Demo"})
	if err != nil {
		return err
	}
	userID := reg.User.ID

	account, err := a.Accounts.CreateAccount(ctx, usecase.CreateAccountInput{UserID: userID, AccountNumber: "DEMO-0001"})
	if err != nil {
		return err
	}

	post := func(step demoStep) (*domain.Account, error) {
		amount, err := domain.MoneyFrom(step.amount)
		if err != nil {
			return nil, err
		}
		in := usecase.AccountAmountInput{AccountID: account.ID(), UserID: userID, Amount: amount}
		if step.deposit {
			return a.Accounts.Deposit(ctx, in)
		}
		return a.Accounts.Withdraw(ctx, in)
	}

	fmt.Fprintln(out, "=== Banking System Prototype ===")
	fmt.Fprintln(out)

	for _, step := range demoScript {
		if err := clock.Set(step.day); err != nil {
			return err
		}
		fmt.Fprintln(out, step.label)
		updated, err := post(step)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Current balance: %s\n\n", updated.Balance().StringFixed(2))
	}

	fmt.Fprintln(out, "Printing statement:")
	if err := a.Statements.PrintStatement(ctx, account.ID(), userID); err != nil {
		return err
	}

	for _, step := range demoFailures {
		fmt.Fprintf(out, "\n%s\n", step.label)
		if _, err := post(step); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	fmt.Fprintln(out, "\n=== End of Prototype ===")
	return nil
}
