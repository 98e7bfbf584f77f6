package gcal

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API client. The direct-insert path is
// optional: without credentials and a stored token the client stays inert
// and the bot only produces the deep link.
type Client struct {
	service   *calendar.Service
	config    *oauth2.Config
	tokenFile string
	token     *oauth2.Token
}

// NewClient creates a new Google Calendar client from a credentials file
// and a previously stored token.
func NewClient(credentialsFile, tokenFile string) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	client := &Client{
		config:    config,
		tokenFile: tokenFile,
	}

	token, err := loadToken(tokenFile)
	if err != nil {
		fmt.Printf("Calendar: no stored token (%v), direct insert disabled\n", err)
		return client, nil
	}
	client.token = token

	if err := client.tryInitService(); err != nil {
		fmt.Printf("Calendar: could not initialize service with stored token: %v\n", err)
	}

	return client, nil
}

// tryInitService initializes the service, refreshing the token if needed
func (c *Client) tryInitService() error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	ctx := context.Background()

	if !c.token.Valid() && c.token.RefreshToken != "" {
		tokenSource := c.config.TokenSource(ctx, c.token)
		newToken, err := tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		if err := saveToken(c.tokenFile, newToken); err != nil {
			fmt.Printf("Warning: could not save refreshed token: %v\n", err)
		}
	}

	httpClient := c.config.Client(ctx, c.token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	c.service = service
	return nil
}

// IsConfigured returns true when the client can insert events.
func (c *Client) IsConfigured() bool {
	return c != nil && c.service != nil
}
