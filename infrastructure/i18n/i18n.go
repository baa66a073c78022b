// Package i18n resolves the request locale and formats catalog messages.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the viewer's language preference.
	LangCookieName = "ti_lang"
)

var matcher = language.NewMatcher(Supported())

// Localizer formats catalog messages for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a localizer for the closest supported locale.
func NewLocalizer(tag language.Tag) *Localizer {
	supported := Match(tag)
	return &Localizer{tag: supported, printer: message.NewPrinter(supported)}
}

// Tag returns the supported locale this localizer formats for.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return English
	}
	return l.tag
}

// T formats the message identified by key with args.
func (l *Localizer) T(key string, args ...any) string {
	if l == nil {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// Match maps tag onto the closest supported locale.
func Match(tags ...language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return Supported()[idx]
}

// ParseTag parses value and reports whether it matches a supported locale.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return Supported()[idx], true
}

// ResolveTag picks the locale for r: query param, then cookie, then
// Accept-Language, then fallback. The bool reports whether the choice came
// from the query param and should be persisted.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return Match(fallback), false
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, _, conf := matcher.Match(tags...); conf != language.No {
				return Match(tags...), false
			}
		}
	}
	return Match(fallback), false
}

// LanguageCookie persists the selected language for a year.
func LanguageCookie(tag language.Tag) *http.Cookie {
	return &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
}
