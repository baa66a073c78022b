package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnsureViewerTokenIssuesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	token := EnsureViewerToken(rec, req)
	if len(token) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", token)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != token {
		t.Fatalf("expected viewer cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("expected HttpOnly viewer cookie")
	}
}

func TestEnsureViewerTokenReusesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ViewerCookie("abc", 60))

	if token := EnsureViewerToken(rec, req); token != "abc" {
		t.Fatalf("expected existing token, got %q", token)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie")
	}
}
