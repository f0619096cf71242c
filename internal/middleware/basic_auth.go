package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"github.com/phexara/phexara-api/internal/pkg/logger"
)

// Requests for files (anything with an extension) are never challenged.
var publicFile = regexp.MustCompile(`\.(.*)$`)

// BasicAuthConfig configures the admin credential gate.
type BasicAuthConfig struct {
	User   string
	Pass   string
	Prefix string // protected path prefix, e.g. /admin
	Realm  string
}

// BasicAuth guards every path under Prefix with HTTP Basic credentials.
// Every request is checked; there is no session. With no User or Pass
// configured, every protected request is denied.
func BasicAuth(cfg BasicAuthConfig) func(http.Handler) http.Handler {
	prefix := strings.TrimSuffix(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "/admin"
	}
	realm := cfg.Realm
	if realm == "" {
		realm = "PromptGallery Admin"
	}
	challenge := `Basic realm="` + realm + `"`

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path != prefix && !strings.HasPrefix(path, prefix+"/") {
				next.ServeHTTP(w, r)
				return
			}
			if publicFile.MatchString(path) {
				next.ServeHTTP(w, r)
				return
			}

			if reason := checkBasicAuth(r, cfg.User, cfg.Pass); reason != "" {
				logger.FromContext(r.Context()).Warn().
					Str("path", path).
					Str("ip", getClientIP(r)).
					Str("reason", reason).
					Msg("Admin access denied")

				w.Header().Set("WWW-Authenticate", challenge)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkBasicAuth returns an empty string when the request carries the
// configured credentials, otherwise the rejection reason.
func checkBasicAuth(r *http.Request, wantUser, wantPass string) string {
	if wantUser == "" || wantPass == "" {
		return "credentials not configured"
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Basic ") {
		return "missing basic credentials"
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "malformed credentials"
	}

	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "malformed credentials"
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	if !userOK || !passOK {
		return "invalid credentials"
	}
	return ""
}
