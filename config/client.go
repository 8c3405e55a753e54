package config

import "time"

// ClientConfig configures the API client used by cmd/client.
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	SessionDB    string // sqlite path holding the persisted session
	RosterURL    string // external class API; empty means same as BaseURL
	RosterAPIKey string
}

// LoadClient loads client configuration from environment variables
func LoadClient() *ClientConfig {
	return &ClientConfig{
		BaseURL:      getenv("HYB_API_URL", "http://localhost:5000/api"),
		Timeout:      getdur("HYB_API_TIMEOUT", 10*time.Second),
		SessionDB:    getenv("HYB_SESSION_DB", "hyb-session.db"),
		RosterURL:    getenv("HYB_ROSTER_URL", ""),
		RosterAPIKey: getenv("HYB_ROSTER_API_KEY", ""),
	}
}
