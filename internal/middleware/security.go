package middleware

import (
	"net/http"
)

// SecurityHeadersMiddleware adds HTTP security headers to all responses.
type SecurityHeadersMiddleware struct {
	isSecure bool // Whether to enable HTTPS-specific headers (true in production)
}

// NewSecurityHeadersMiddleware creates a new security headers middleware.
// Set isSecure to true in production to enable HSTS.
func NewSecurityHeadersMiddleware(isSecure bool) *SecurityHeadersMiddleware {
	return &SecurityHeadersMiddleware{
		isSecure: isSecure,
	}
}

// Handler returns middleware that sets security headers on all responses.
func (m *SecurityHeadersMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent clickjacking - deny all framing
		w.Header().Set("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// XSS protection (legacy but still helpful for older browsers)
		w.Header().Set("X-XSS-Protection", "1; mode=block")

		// HSTS - only in production with HTTPS
		if m.isSecure {
			// max-age=31536000 = 1 year
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		w.Header().Set("Content-Security-Policy", buildCSP())

		// Permissions Policy - disable browser features we don't need
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		next.ServeHTTP(w, r)
	})
}

// buildCSP constructs the Content-Security-Policy header value.
func buildCSP() string {
	return "default-src 'self'; " +
		// Scripts: self + htmx from unpkg + the Tailwind runtime
		"script-src 'self' https://unpkg.com https://cdn.tailwindcss.com; " +
		// Styles: self + unsafe-inline for Tailwind and htmx injected styles
		"style-src 'self' 'unsafe-inline'; " +
		// Images: self + data URIs + any HTTPS source (remote/R2 photographs)
		"img-src 'self' data: https:; " +
		"font-src 'self'; " +
		// Connect: self only (for htmx AJAX calls)
		"connect-src 'self'; " +
		// Frames: the Google Maps embed on the contact page
		"frame-src https://www.google.com https://maps.google.com; " +
		// Prevent framing by any site
		"frame-ancestors 'none'; " +
		// Restrict base URI to prevent base tag injection
		"base-uri 'self'; " +
		// Form posts redirect to the WhatsApp deep link
		"form-action 'self' https://wa.me https://api.whatsapp.com"
}
