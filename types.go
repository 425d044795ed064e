package forwardauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Identity is the per-request identity derived from the trusted proxy
// headers. It is never persisted; it only drives user provisioning.
type Identity struct {
	Email     string
	FirstName string
	LastName  string
}

// Config holds forward-auth options
type Config interface {
	GetTrustedHeader() string
	GetAccessTokenHeader() string
	GetSessionCookieName() string
	GetLogoutMarkerCookieName() string
	GetLogoutPath() string
	GetSignOutPath() string
	GetUpstreamLogoutURL() string
	GetIgnorePrefixes() []string
}

// SetupChecker reports whether the host completed first-run owner setup.
// It is queried on every request; auto-login must never run before the
// instance owner exists.
type SetupChecker interface {
	IsOwnerSetUp(ctx context.Context) bool
}

// SetupCheckerFunc adapts a plain function to SetupChecker.
type SetupCheckerFunc func(ctx context.Context) bool

func (f SetupCheckerFunc) IsOwnerSetUp(ctx context.Context) bool {
	return f(ctx)
}

// UserStore is the slice of the host user store consumed by the provisioner.
type UserStore interface {
	FindByEmail(ctx context.Context, email string, withRole bool) (*User, error)
	CreateWithDefaultRole(ctx context.Context, record *User) (*User, error)
	Save(ctx context.Context, record *User) (*User, error)
}

// RoleStore resolves roles directly by id, for stores that do not load
// the role relation eagerly.
type RoleStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
}

// SessionIssuer sets the host's session cookie for a provisioned user.
type SessionIssuer interface {
	IssueSessionCookie(ctx router.Context, user *User) error
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(logLine("ERR", msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(logLine("INF", msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(logLine("DBG", msg, args))
}

// logLine renders the message followed by key=value pairs; a dangling
// arg is appended as-is.
func logLine(level, msg string, args []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] FWDAUTH %s", level, msg)

	i := 0
	for ; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if i < len(args) {
		fmt.Fprintf(&b, " %v", args[i])
	}

	return b.String()
}
