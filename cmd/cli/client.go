package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iho/bankledger/internal/adapter/http/dto"
)

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(opts *options) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		token:   opts.token,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
	Detail  string
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// do sends a request and returns the raw body of a 2xx response.
func (c *apiClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
			apiErr.Detail = e.Message
		}
		return raw, apiErr
	}

	return raw, nil
}

// call sends a request and decodes a JSON response into out.
func (c *apiClient) call(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
