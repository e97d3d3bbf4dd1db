package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/adapter/printer"
	"github.com/iho/bankledger/internal/app"
	"github.com/iho/bankledger/internal/infrastructure/config"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "lo", truncate("longerstring", 2))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestHashPasswordCmd(t *testing.T) {
	orig := bcryptGenerate
	bcryptGenerate = func(p []byte, cost int) ([]byte, error) {
		return []byte("hashed-value"), nil
	}
	defer func() { bcryptGenerate = orig }()

	out, err := execute(t, "hash-password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "hashed-value", strings.TrimSpace(out))
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Current balance: 1000.00")
	assert.Contains(t, out, "Current balance: 3000.00")
	assert.Contains(t, out, "Current balance: 2500.00")
	assert.Contains(t, out, "2012-01-14")
	assert.Contains(t, out, "2012-01-10")
	assert.Contains(t, out, "Error: insufficient funds")
	assert.Contains(t, out, "Error: amount must be positive")
	assert.Contains(t, out, "=== End of Prototype ===")

	// statement rows are newest first
	assert.Less(t, strings.Index(out, "2012-01-14"), strings.Index(out, "2012-01-10"))
}

func TestClientCommands(t *testing.T) {
	var printed bytes.Buffer
	a, err := app.New(context.Background(), &config.Config{
		Storage:       config.StorageMemory,
		JWTSecret:     "cli-test-secret",
		JWTExpiration: time.Hour,
	}, zerolog.Nop(), app.Options{Printer: printer.NewConsole(&printed), Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(a.Router())
	defer srv.Close()

	_, err = execute(t, "--url", srv.URL, "register", "--phone", "+15551112222", "--password", "cli-password", "--name", "Cli")
	require.NoError(t, err)

	token, err := execute(t, "--url", srv.URL, "login", "--phone", "+15551112222", "--password", "cli-password", "--token-only")
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.NotEmpty(t, token)

	api := func(args ...string) (string, error) {
		return execute(t, append([]string{"--url", srv.URL, "--token", token}, args...)...)
	}

	out, err := api("accounts", "create", "--number", "CLI-0001", "--initial-deposit", "50")
	require.NoError(t, err)
	var account dto.AccountResponse
	require.NoError(t, json.Unmarshal([]byte(out), &account))
	assert.Equal(t, "50.00", account.Balance)

	_, err = api("accounts", "deposit", account.ID, "25.5")
	require.NoError(t, err)

	out, err = api("accounts", "balance", account.ID)
	require.NoError(t, err)
	assert.Contains(t, out, `"balance": "75.50"`)

	_, err = api("accounts", "withdraw", account.ID, "1000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(422)")

	out, err = api("accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CLI-0001")
	assert.Contains(t, out, "ACTIVE")

	out, err = api("statement", "get", account.ID, "--limit", "1")
	require.NoError(t, err)
	var page dto.PageResponse[dto.TransactionResponse]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasMore)

	out, err = api("statement", "export", account.ID, "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Date,Amount,Balance"))

	out, err = api("statement", "print", account.ID)
	require.NoError(t, err)
	assert.Equal(t, "statement printed", strings.TrimSpace(out))
	assert.Contains(t, printed.String(), "75.50")

	out, err = api("ledger", "consistency", account.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "PASSED")

	_, err = api("accounts", "close", account.ID)
	require.Error(t, err)

	_, err = execute(t, "--url", srv.URL, "accounts", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(401)")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("BANKLEDGER_TOKEN", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
