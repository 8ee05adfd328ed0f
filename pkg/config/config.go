// Package config loads the program's configuration from environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultSMTPServer = "smtp.gmail.com"
	defaultSMTPPort   = 587
	defaultAPIBaseURL = "https://api.coingecko.com/api/v3"
)

// Email provider names accepted in EMAIL_PROVIDER.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// ErrInvalidConfig is wrapped by every error returned from Load, so callers
// can classify configuration failures with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

var defaultWatchedCoins = []string{"bitcoin", "ethereum"}

type Config struct {
	EmailUser      string
	EmailPass      string
	RecipientEmail string
	SMTPServer     string
	SMTPPort       int
	Provider       string
	ResendAPIKey   string
	APIBaseURL     string
	WatchedCoins   []string
}

// Load reads configuration from the environment. A .env.<ENV> file is loaded
// first if present (ENV defaults to "local") so local runs don't need to
// export everything by hand.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}
	godotenv.Load(".env." + env)

	config := &Config{
		EmailUser:      os.Getenv("EMAIL_USER"),
		EmailPass:      os.Getenv("EMAIL_PASS"),
		RecipientEmail: os.Getenv("RECIPIENT_EMAIL"),
		SMTPServer:     defaultSMTPServer,
		SMTPPort:       defaultSMTPPort,
		Provider:       ProviderSMTP,
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		APIBaseURL:     defaultAPIBaseURL,
	}

	var missing []string
	if config.EmailUser == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if config.EmailPass == "" {
		missing = append(missing, "EMAIL_PASS")
	}
	if config.RecipientEmail == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required environment variables: %s",
			ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if server := os.Getenv("SMTP_SERVER"); server != "" {
		config.SMTPServer = server
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("%w: SMTP_PORT %q is not a valid port", ErrInvalidConfig, port)
		}
		config.SMTPPort = n
	}

	if provider := os.Getenv("EMAIL_PROVIDER"); provider != "" {
		switch provider {
		case ProviderSMTP, ProviderResend, ProviderLog:
			config.Provider = provider
		default:
			return nil, fmt.Errorf("%w: unknown EMAIL_PROVIDER %q", ErrInvalidConfig, provider)
		}
	}
	if config.Provider == ProviderResend && config.ResendAPIKey == "" {
		return nil, fmt.Errorf("%w: EMAIL_PROVIDER=resend requires RESEND_API_KEY", ErrInvalidConfig)
	}

	if baseURL := os.Getenv("COINGECKO_API_URL"); baseURL != "" {
		config.APIBaseURL = baseURL
	}

	coins, err := watchedCoins()
	if err != nil {
		return nil, err
	}
	config.WatchedCoins = coins

	return config, nil
}

// watchedCoins resolves the watch list. WATCHED_COINS takes precedence and
// must be a JSON string array; WATCHED_COINS_LIST is a comma-separated
// fallback. With neither set, a default pair is watched.
func watchedCoins() ([]string, error) {
	if raw := os.Getenv("WATCHED_COINS"); raw != "" {
		var coins []string
		if err := json.Unmarshal([]byte(raw), &coins); err != nil {
			return nil, fmt.Errorf("%w: WATCHED_COINS is not a JSON string array: %v", ErrInvalidConfig, err)
		}
		if len(coins) == 0 {
			return nil, fmt.Errorf("%w: WATCHED_COINS resolves to an empty watch list", ErrInvalidConfig)
		}
		return coins, nil
	}

	if raw := os.Getenv("WATCHED_COINS_LIST"); raw != "" {
		var coins []string
		for _, part := range strings.Split(raw, ",") {
			if coin := strings.TrimSpace(part); coin != "" {
				coins = append(coins, coin)
			}
		}
		if len(coins) == 0 {
			return nil, fmt.Errorf("%w: WATCHED_COINS_LIST resolves to an empty watch list", ErrInvalidConfig)
		}
		return coins, nil
	}

	return append([]string(nil), defaultWatchedCoins...), nil
}
