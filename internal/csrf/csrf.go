// Package csrf provides CSRF protection using the double-submit cookie pattern.
//
// A random token is set in a cookie and repeated in every form as a hidden
// field. On POST the two must match. A cross-site attacker can make the
// browser send the cookie but cannot read it to fill in the form field.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

// =============================================================================
// Configuration Constants
// =============================================================================

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "nhc_csrf"

	// FormFieldName is the name of the CSRF token form field.
	FormFieldName = "csrf_token"

	// HeaderName lets htmx requests send the token without a form field.
	HeaderName = "X-CSRF-Token"

	// TokenLength is the number of random bytes for the token (32 bytes = 256 bits).
	TokenLength = 32

	// CookieMaxAge is the lifetime of the CSRF cookie (12 hours), long enough
	// for a visitor to leave the appointment form open while they gather
	// details.
	CookieMaxAge = 12 * 60 * 60
)

// encodedLength is the base64 length of a TokenLength token.
var encodedLength = base64.URLEncoding.EncodedLen(TokenLength)

// =============================================================================
// Token Generation
// =============================================================================

// GenerateToken generates a cryptographically secure random token,
// base64 URL-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// MustGenerateToken generates a token or panics.
func MustGenerateToken() string {
	token, err := GenerateToken()
	if err != nil {
		panic("csrf: failed to generate token: " + err.Error())
	}
	return token
}

// =============================================================================
// Token Validation
// =============================================================================

// ValidateToken compares the cookie token with the submitted token in
// constant time.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

// ValidateRequest validates the CSRF token of a request. The submitted
// token comes from the X-CSRF-Token header when present, otherwise from the
// csrf_token form field.
func ValidateRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}

	submitted := r.Header.Get(HeaderName)
	if submitted == "" {
		submitted = r.FormValue(FormFieldName)
	}

	return ValidateToken(cookie.Value, submitted)
}

// =============================================================================
// Cookie Management
// =============================================================================

// SetCookie sets the CSRF token cookie on the response. The token reaches
// the page through the rendered form, so the cookie is HttpOnly.
func SetCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetTokenFromRequest retrieves the CSRF token from the request cookie.
// Returns empty string if the cookie is missing or malformed.
func GetTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || len(cookie.Value) != encodedLength {
		return ""
	}
	return cookie.Value
}

// =============================================================================
// Handler Helpers
// =============================================================================

// EnsureToken returns the request's token, issuing a new cookie when there
// is none. Handlers call it on GET before rendering a form.
func EnsureToken(w http.ResponseWriter, r *http.Request, isSecure bool) string {
	if existing := GetTokenFromRequest(r); existing != "" {
		return existing
	}

	token := MustGenerateToken()
	SetCookie(w, token, isSecure)
	return token
}

// Protect returns middleware that rejects unsafe methods whose token does
// not match. Rejections are passed to onFailure.
func Protect(onFailure http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if !ValidateRequest(r) {
				onFailure(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
