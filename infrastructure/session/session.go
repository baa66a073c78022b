package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// CookieName holds the anonymous viewer token that keys per-viewer view state.
const CookieName = "X-Viewer-Token"

// MaxAge keeps the viewer token for a day of inactivity.
const MaxAge = 24 * time.Hour

func ViewerCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// EnsureViewerToken returns the request's viewer token, issuing a new one
// on w when the request carries none.
func EnsureViewerToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return c.Value
	}
	token := NewToken()
	http.SetCookie(w, ViewerCookie(token, int(MaxAge.Seconds())))
	return token
}

func NewToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
