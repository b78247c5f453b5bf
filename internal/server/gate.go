// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// CombineCredentials resolves the gate credential from both supported forms:
// the combined "user:password" value wins when set; otherwise separate user
// and password values are joined. Returns "" when neither form is complete,
// which leaves the gate disabled.
func CombineCredentials(combined, user, password string) string {
	if combined != "" {
		return combined
	}
	if user != "" && password != "" {
		return user + ":" + password
	}
	return ""
}

// basicAuthGate wraps next with an HTTP basic-auth check against credentials
// in "user:password" form. An empty credentials string disables the gate.
// On failure the core handlers are never reached.
func basicAuthGate(credentials string, next http.Handler) http.Handler {
	user, password, ok := strings.Cut(credentials, ":")
	if credentials == "" || !ok || user == "" || password == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPassword, ok := r.BasicAuth()
		if ok &&
			subtle.ConstantTimeCompare([]byte(gotUser), []byte(user)) == 1 &&
			subtle.ConstantTimeCompare([]byte(gotPassword), []byte(password)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="placelist"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}
