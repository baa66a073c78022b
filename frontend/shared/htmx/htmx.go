package htmx

import (
	"net/http"
	"strings"
)

// RequestHeader is sent by htmx on every request it issues.
const RequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}
