// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the API clients.
package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// StatusError describes a non-2xx upstream response as data instead of a
// transport failure: the HTTP status code, the code rendered as a status
// string, and the upstream error message. The pipeline branches on it
// explicitly; it never aborts a run.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream HTTP %d: %s", e.Code, e.Message)
}

// ErrorFromResponse translates a non-2xx response into a *StatusError. It
// best-effort decodes a Google-style error body ({"error":{"message":...}})
// and falls back to the generic status text. The response body is consumed.
func ErrorFromResponse(resp *http.Response) *StatusError {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	// A malformed or empty error body is expected; keep the fallback.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Error.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &StatusError{
		Code:    resp.StatusCode,
		Status:  strconv.Itoa(resp.StatusCode),
		Message: msg,
	}
}

// DoJSON executes req, returns a *StatusError for any non-2xx status, and
// decodes a successful JSON body into v (v may be nil to discard the body).
// Transport errors are returned unchanged.
func DoJSON(client *http.Client, req *http.Request, v any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrorFromResponse(resp)
	}

	if v == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
