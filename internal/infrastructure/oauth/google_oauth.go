package oauth

import (
	"context"
	"encoding/json"
	"fmt"

	"tripwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// GoogleOAuth handles OAuth authentication for the Calendar API.
type GoogleOAuth struct {
	config *oauth2.Config
	logger logger.Logger
}

// NewGoogleOAuth creates a new Google OAuth handler
func NewGoogleOAuth(clientID, clientSecret, redirectURI string, logger logger.Logger) *GoogleOAuth {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
	}

	return &GoogleOAuth{
		config: config,
		logger: logger,
	}
}

// Configured reports whether client credentials are present.
func (o *GoogleOAuth) Configured() bool {
	return o.config.ClientID != "" && o.config.ClientSecret != ""
}

// TokenSourceFromJSON builds a refreshing token source from a stored
// token JSON blob.
func (o *GoogleOAuth) TokenSourceFromJSON(ctx context.Context, tokenJSON string) (oauth2.TokenSource, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("failed to decode stored token: %w", err)
	}
	return o.config.TokenSource(ctx, &token), nil
}

// GenerateAuthURL generates a URL for the user to authorize the application
func (o *GoogleOAuth) GenerateAuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token
func (o *GoogleOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// TokenToJSON converts a token to JSON for persistence
func (o *GoogleOAuth) TokenToJSON(token *oauth2.Token) (string, error) {
	data, err := json.Marshal(token)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
