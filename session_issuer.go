package forwardauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// SessionClaims is the payload the default issuer signs into the host
// session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	RoleSlug string `json:"role,omitempty"`
}

// JWTSessionIssuer is the default SessionIssuer. Hosts with their own
// cookie primitive implement SessionIssuer instead.
type JWTSessionIssuer struct {
	cookieName string
	signingKey []byte
	issuer     string
	ttl        time.Duration
	logger     Logger
}

func NewJWTSessionIssuer(cookieName string, signingKey []byte, ttl time.Duration) *JWTSessionIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &JWTSessionIssuer{
		cookieName: cookieName,
		signingKey: signingKey,
		ttl:        ttl,
		logger:     defLogger{},
	}
}

func (s *JWTSessionIssuer) WithIssuer(issuer string) *JWTSessionIssuer {
	s.issuer = issuer
	return s
}

func (s *JWTSessionIssuer) WithLogger(logger Logger) *JWTSessionIssuer {
	s.logger = logger
	return s
}

// IssueSessionCookie signs an HS256 session token for the user and sets
// it as the host session cookie.
func (s *JWTSessionIssuer) IssueSessionCookie(ctx router.Context, user *User) error {
	now := time.Now()

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: user.Email,
	}

	if user.Role != nil {
		claims.RoleSlug = user.Role.Slug
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	ctx.Cookie(&router.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(s.ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	return nil
}
