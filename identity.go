package forwardauth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
)

// HeaderAccessToken is the fallback header some proxies use to forward
// the upstream access token alongside the identity headers.
const HeaderAccessToken = "X-Auth-Request-Access-Token"

// Resolver extracts an Identity from the trusted proxy headers.
//
// The access token is decoded without signature verification: it is a
// display-name hint coming from the same trusted proxy hop, never an
// authentication input. The email header is the only matching key.
type Resolver struct {
	header      string
	tokenHeader string
	logger      Logger
}

func NewResolver(cfg Config) *Resolver {
	tokenHeader := cfg.GetAccessTokenHeader()
	if tokenHeader == "" {
		tokenHeader = HeaderAccessToken
	}

	return &Resolver{
		header:      cfg.GetTrustedHeader(),
		tokenHeader: tokenHeader,
		logger:      defLogger{},
	}
}

func (r *Resolver) WithLogger(logger Logger) *Resolver {
	r.logger = logger
	return r
}

// Resolve reads the trusted email header plus the optional bearer token.
// A missing or blank header yields ok=false, never an error.
func (r *Resolver) Resolve(ctx router.Context) (Identity, bool) {
	if r.header == "" {
		return Identity{}, false
	}

	email := strings.TrimSpace(ctx.GetString(r.header, ""))
	if email == "" {
		return Identity{}, false
	}

	firstName, lastName := r.resolveNames(ctx)

	return Identity{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, true
}

func (r *Resolver) resolveNames(ctx router.Context) (string, string) {
	raw := ctx.GetString(router.HeaderAuthorization, "")
	if raw == "" {
		raw = ctx.GetString(r.tokenHeader, "")
	}
	if raw == "" {
		return "", ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(stripAuthScheme(raw), claims); err != nil {
		r.logger.Debug("failed to decode access token", "error", err)
		return "", ""
	}

	firstName := claimString(claims, "given_name", "firstName")
	lastName := claimString(claims, "family_name", "lastName")

	return strings.TrimSpace(firstName), strings.TrimSpace(lastName)
}

func stripAuthScheme(value string) string {
	const scheme = "Bearer"
	if len(value) > len(scheme)+1 && strings.EqualFold(value[:len(scheme)], scheme) {
		return strings.TrimSpace(value[len(scheme):])
	}
	return strings.TrimSpace(value)
}

// claimString returns the first usable string among the given claim keys.
// Array-shaped values take their first element.
func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}
