package forwardauth

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Environment variables read by NewEnvConfig.
const (
	EnvTrustedHeader     = "FORWARD_AUTH_TRUSTED_HEADER"
	EnvAccessTokenHeader = "FORWARD_AUTH_ACCESS_TOKEN_HEADER"
	EnvUpstreamLogoutURL = "FORWARD_AUTH_UPSTREAM_LOGOUT_URL"
	EnvSessionCookieName = "FORWARD_AUTH_SESSION_COOKIE"
	EnvLogoutPath        = "FORWARD_AUTH_LOGOUT_PATH"
	EnvSignOutPath       = "FORWARD_AUTH_SIGN_OUT_PATH"
)

// Defaults mirror the host the component was written against; override
// per deployment.
const (
	DefaultSessionCookieName      = "n8n-auth"
	DefaultLogoutMarkerCookieName = "sso-logout-pending"
	DefaultLogoutPath             = "/rest/logout"
	DefaultSignOutPath            = "/oauth2/sign_out"
)

// DefaultIgnorePrefixes skips static assets, health checks, webhook
// receivers, and OAuth credential callbacks.
func DefaultIgnorePrefixes() []string {
	return []string{
		"/assets",
		"/healthz",
		"/health",
		"/webhook",
		"/rest/oauth2-credential",
	}
}

// EnvConfig is the environment-backed Config implementation. A blank
// TrustedHeader disables the whole component.
type EnvConfig struct {
	TrustedHeader          string
	AccessTokenHeader      string
	SessionCookieName      string
	LogoutMarkerCookieName string
	LogoutPath             string
	SignOutPath            string
	UpstreamLogoutURL      string
	IgnorePrefixes         []string
}

var _ Config = (*EnvConfig)(nil)

// NewEnvConfig builds an EnvConfig from the process environment,
// falling back to package defaults for everything but the trusted
// header and the upstream logout URL.
func NewEnvConfig() *EnvConfig {
	return &EnvConfig{
		TrustedHeader:          os.Getenv(EnvTrustedHeader),
		AccessTokenHeader:      getenvDefault(EnvAccessTokenHeader, HeaderAccessToken),
		SessionCookieName:      getenvDefault(EnvSessionCookieName, DefaultSessionCookieName),
		LogoutMarkerCookieName: DefaultLogoutMarkerCookieName,
		LogoutPath:             getenvDefault(EnvLogoutPath, DefaultLogoutPath),
		SignOutPath:            getenvDefault(EnvSignOutPath, DefaultSignOutPath),
		UpstreamLogoutURL:      os.Getenv(EnvUpstreamLogoutURL),
		IgnorePrefixes:         DefaultIgnorePrefixes(),
	}
}

func (c *EnvConfig) GetTrustedHeader() string          { return c.TrustedHeader }
func (c *EnvConfig) GetAccessTokenHeader() string      { return c.AccessTokenHeader }
func (c *EnvConfig) GetSessionCookieName() string      { return c.SessionCookieName }
func (c *EnvConfig) GetLogoutMarkerCookieName() string { return c.LogoutMarkerCookieName }
func (c *EnvConfig) GetLogoutPath() string             { return c.LogoutPath }
func (c *EnvConfig) GetSignOutPath() string            { return c.SignOutPath }
func (c *EnvConfig) GetUpstreamLogoutURL() string      { return c.UpstreamLogoutURL }
func (c *EnvConfig) GetIgnorePrefixes() []string       { return c.IgnorePrefixes }

// Validate checks the optional settings are well formed. A blank
// trusted header is valid; it disables the middleware.
func (c *EnvConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UpstreamLogoutURL, is.URL),
		validation.Field(&c.SessionCookieName, validation.Required),
		validation.Field(&c.LogoutMarkerCookieName, validation.Required),
		validation.Field(&c.LogoutPath, validation.Required),
		validation.Field(&c.SignOutPath, validation.Required),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
