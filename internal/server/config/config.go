// Package config handles configuration for the server component. All values
// come from the environment; required variables missing at startup abort the
// process before any listener is opened.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the EasyGo server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - JWTSecret: HMAC secret for signing JWTs (HS256).
//   - JWTAudience / JWTIssuer: claims enforced on every minted and validated token.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes, in seconds.
//   - TwilioAccountSID / TwilioAuthToken / TwilioServiceSID: Verify API credentials.
type Config struct {
	EndpointAddr     string `env:"EASYGO_ENDPOINT_ADDR" envDefault:":3000"`
	DatabaseDSN      string `env:"EASYGO_DATABASE_DSN,required,notEmpty"`
	JWTSecret        string `env:"JWT_SECRET,required,notEmpty"`
	JWTAudience      string `env:"JWT_TOKEN_AUDIENCE,required,notEmpty"`
	JWTIssuer        string `env:"JWT_TOKEN_ISSUER,required,notEmpty"`
	AccessTokenTTL   int64  `env:"JWT_ACCESS_TOKEN_TTL,required,notEmpty"`
	RefreshTokenTTL  int64  `env:"JWT_REFRESH_TOKEN_TTL,required,notEmpty"`
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID,required,notEmpty"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN,required,notEmpty"`
	TwilioServiceSID string `env:"TWILIO_SERVICE_SID,required,notEmpty"`
}

// LoadConfig reads configuration from the environment. A missing required
// variable is a startup error, not a retryable condition.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// AccessTokenValidityDuration returns the access token TTL as a duration.
func (c *Config) AccessTokenValidityDuration() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Second
}

// RefreshTokenValidityDuration returns the refresh token TTL as a duration.
func (c *Config) RefreshTokenValidityDuration() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Second
}
