// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "placelist/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractionConfig holds settings for the extraction pipeline.
type ExtractionConfig struct {
	HTTPConfig `yaml:",inline"`

	// CallDelay is the delay applied before every outbound API call,
	// including the first of a term (default 200ms).
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`

	// PageDelay is the additional delay applied before fetching a
	// continuation page of the same search (default 2s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// BasicAuthCredentials gates every route when set, in "user:password"
	// form. Empty disables the gate.
	BasicAuthCredentials string `json:"basic_auth_credentials,omitempty" yaml:"basic_auth_credentials,omitempty"`
}
