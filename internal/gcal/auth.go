package gcal

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// OAuthScopes contains only Calendar scopes
var OAuthScopes = []string{
	calendar.CalendarEventsScope,
}

// loadOAuthConfig loads OAuth2 configuration from a credentials file or the
// GOOGLE_CREDENTIALS_JSON environment variable (container deployments).
func loadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS_JSON"); credJSON != "" {
		if config, err := google.ConfigFromJSON([]byte(credJSON), OAuthScopes...); err == nil {
			return config, nil
		}
	}

	if credentialsFile != "" {
		if config, err := loadConfigFromFile(credentialsFile); err == nil {
			return config, nil
		}
	}

	if config, err := loadConfigFromFile("./credentials.json"); err == nil {
		return config, nil
	}

	return nil, fmt.Errorf("no credentials file found - provide credentials.json or set GOOGLE_CREDENTIALS_JSON")
}

// loadConfigFromFile attempts to load OAuth config from a file
func loadConfigFromFile(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	config, err := google.ConfigFromJSON(data, OAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return config, nil
}

// loadToken reads a stored OAuth token from file
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// saveToken writes an OAuth token to file
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
