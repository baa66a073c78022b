package context

import (
	"context"

	"teaminsight/infrastructure/i18n"
)

type viewerKey struct{}

type localizerKey struct{}

func NewContextWithViewer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, viewerKey{}, token)
}

func GetViewerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(viewerKey{}).(string)
	return token, ok && token != ""
}

func NewContextWithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, loc)
}

// GetLocalizerFromContext returns the request localizer, defaulting to English.
func GetLocalizerFromContext(ctx context.Context) *i18n.Localizer {
	if loc, ok := ctx.Value(localizerKey{}).(*i18n.Localizer); ok && loc != nil {
		return loc
	}
	return i18n.NewLocalizer(i18n.English)
}
