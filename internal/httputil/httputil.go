// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the hosted API clients.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept for the error.
const maxErrorBody = 512

// StatusError reports a non-2xx response from a hosted API.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.StatusCode, e.Body)
}

// Temporary reports whether the failure is a rate limit or a server-side
// error that may succeed if the user tries again later.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// CheckStatus returns nil for 2xx responses. Otherwise it drains the body
// (up to maxErrorBody bytes are kept) and returns a *StatusError. The
// caller still owns closing resp.Body.
func CheckStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	io.Copy(io.Discard, resp.Body)
	return &StatusError{Service: service, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
}

// PostJSON sends in as a JSON POST body to url and decodes the JSON response
// into out. A nil client uses http.DefaultClient. Requests are sent once;
// there is no retry.
func PostJSON(ctx context.Context, client *http.Client, service, url string, headers map[string]string, in, out any) error {
	bodyBytes, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", service, err)
	}
	defer resp.Body.Close()

	if err := CheckStatus(service, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", service, err)
	}
	return nil
}
