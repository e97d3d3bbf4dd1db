package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/bankledger/internal/adapter/http/dto"
)

func registerCmd(opts *options) *cobra.Command {
	var phone, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user and print its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp dto.AuthResponse
			err := newClient(opts).call(cmd.Context(), http.MethodPost, "/api/v1/auth/register",
				dto.RegisterRequest{Phone: phone, Password: password, Name: name}, &resp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func loginCmd(opts *options) *cobra.Command {
	var phone, password string
	var tokenOnly bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp dto.AuthResponse
			err := newClient(opts).call(cmd.Context(), http.MethodPost, "/api/v1/auth/login",
				dto.LoginRequest{Phone: phone, Password: password}, &resp)
			if err != nil {
				return err
			}
			if tokenOnly {
				fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
				return nil
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&tokenOnly, "token-only", false, "Print only the token, for export BANKLEDGER_TOKEN=$(...)")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var number, initial string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body := map[string]string{"accountNumber": number}
			if initial != "" {
				body["initialDeposit"] = initial
			}
			var resp dto.AccountResponse
			if err := newClient(opts).call(cmd.Context(), http.MethodPost, "/api/v1/accounts", body, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	create.Flags().StringVar(&number, "number", "", "Account number")
	create.Flags().StringVar(&initial, "initial-deposit", "", "Optional opening deposit")
	_ = create.MarkFlagRequired("number")

	var limit int
	var cursor string
	list := &cobra.Command{
		Use:   "list",
		Short: "List your accounts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var page dto.PageResponse[dto.AccountListItem]
			path := "/api/v1/accounts?" + pageQuery(limit, cursor).Encode()
			if err := newClient(opts).call(cmd.Context(), http.MethodGet, path, nil, &page); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tBALANCE")
			for _, a := range page.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", truncate(a.ID, 16), a.AccountNumber, a.Status, a.Balance)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if page.NextCursor != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "next cursor: %s\n", *page.NextCursor)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Page size (1-100)")
	list.Flags().StringVar(&cursor, "cursor", "", "Cursor from a previous page")

	balance := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.BalanceResponse
			if err := newClient(opts).call(cmd.Context(), http.MethodGet, accountPath(args[0], "/balance"), nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close <account-id>",
		Short: "Close an account with a zero balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if err := newClient(opts).call(cmd.Context(), http.MethodDelete, accountPath(args[0], ""), nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.AddCommand(create, list, balance, postingCmd(opts, "deposit"), postingCmd(opts, "withdraw"), closeCmd)
	return cmd
}

func postingCmd(opts *options, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <account-id> <amount>",
		Short: "Post a " + action,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			err := newClient(opts).call(cmd.Context(), http.MethodPost, accountPath(args[0], "/"+action),
				map[string]string{"amount": args[1]}, &resp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func statementCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Statement operations",
	}

	var limit int
	var cursor, from, to string
	get := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Fetch one page of postings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := pageQuery(limit, cursor)
			setIf(q, "startDate", from)
			setIf(q, "endDate", to)

			var page dto.PageResponse[dto.TransactionResponse]
			if err := newClient(opts).call(cmd.Context(), http.MethodGet, accountPath(args[0], "/statement?"+q.Encode()), nil, &page); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	get.Flags().IntVar(&limit, "limit", 0, "Page size (1-100)")
	get.Flags().StringVar(&cursor, "cursor", "", "Cursor from a previous page")
	get.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD or RFC 3339)")
	get.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD or RFC 3339)")

	var format string
	export := &cobra.Command{
		Use:   "export <account-id>",
		Short: "Download the statement as json or csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"format": {format}}
			raw, err := newClient(opts).do(cmd.Context(), http.MethodGet, accountPath(args[0], "/statement/export?"+q.Encode()), nil)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	export.Flags().StringVar(&format, "format", "json", "Export format: json or csv")

	printCmd := &cobra.Command{
		Use:   "print <account-id>",
		Short: "Print the statement on the server console",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.MessageResponse
			if err := newClient(opts).call(cmd.Context(), http.MethodPost, accountPath(args[0], "/statement/print"), nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.AddCommand(get, export, printCmd)
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistency := &cobra.Command{
		Use:   "consistency <account-id>",
		Short: "Check that the stored balance matches the postings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := newClient(opts).do(cmd.Context(), http.MethodGet, accountPath(args[0], "/consistency"), nil)

			var apiErr *apiError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict) {
				return err
			}

			var result dto.ConsistencyResponse
			if jsonErr := json.Unmarshal(raw, &result); jsonErr != nil {
				return fmt.Errorf("failed to parse response: %w", jsonErr)
			}

			out := cmd.OutOrStdout()
			if result.Consistent {
				fmt.Fprintln(out, "Consistency check PASSED")
			} else {
				fmt.Fprintln(out, "Consistency check FAILED")
			}
			fmt.Fprintf(out, "Stored balance: %s\nSum of amounts: %s\nTransactions: %d\n",
				result.StoredBalance, result.SumOfAmounts, result.Transactions)

			if !result.Consistent {
				return fmt.Errorf("account %s is inconsistent", result.AccountID)
			}
			return nil
		},
	}

	cmd.AddCommand(consistency)
	return cmd
}

func accountPath(id, suffix string) string {
	return "/api/v1/accounts/" + url.PathEscape(id) + suffix
}

func pageQuery(limit int, cursor string) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	setIf(q, "cursor", cursor)
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
