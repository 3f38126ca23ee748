package auth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/bittenrichard/30-07/internal/config"
)

// NewOAuthConfig builds the OAuth2 config used for the connect/callback
// flow. Only the calendar-events scope is requested.
func NewOAuthConfig(cfg config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}
}

// CalendarService returns a calendar client bound to one user's refresh
// token. A fresh service is built per call so no credential is ever
// shared between requests for different users.
func CalendarService(ctx context.Context, conf *oauth2.Config, refreshToken string) (*calendar.Service, error) {
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return calendar.NewService(ctx, option.WithTokenSource(ts))
}
