package forwardauth

import (
	"net/http"
	"net/url"
	"time"

	"github.com/goliatone/go-router"
)

// logoutMarkerTTL bounds the window between the local logout request
// and the follow-up request that completes the upstream sign-out.
const logoutMarkerTTL = 60 * time.Second

// LogoutState tracks the two-phase logout sequence. The marker cookie
// is the only state carrier; nothing is stored server side.
type LogoutState string

const (
	LogoutIdle            LogoutState = "idle"
	LogoutUpstreamPending LogoutState = "upstream-pending"
)

// LogoutCoordinator chains the host's local logout to the identity
// provider's sign-out endpoint. The two cannot happen in one
// request/response cycle because the upstream sign-out needs a
// client-driven redirect, so a short-lived marker cookie set on the
// logout request triggers completion on the next request.
type LogoutCoordinator struct {
	sessionCookie string
	markerCookie  string
	logoutPath    string
	signOutPath   string
	upstreamURL   string
	logger        Logger
}

func NewLogoutCoordinator(cfg Config) *LogoutCoordinator {
	markerCookie := cfg.GetLogoutMarkerCookieName()
	if markerCookie == "" {
		markerCookie = DefaultLogoutMarkerCookieName
	}

	return &LogoutCoordinator{
		sessionCookie: cfg.GetSessionCookieName(),
		markerCookie:  markerCookie,
		logoutPath:    cfg.GetLogoutPath(),
		signOutPath:   cfg.GetSignOutPath(),
		upstreamURL:   cfg.GetUpstreamLogoutURL(),
		logger:        defLogger{},
	}
}

func (l *LogoutCoordinator) WithLogger(logger Logger) *LogoutCoordinator {
	l.logger = logger
	return l
}

// State inspects the request cookies: a present marker cookie means the
// previous request was a logout and the upstream sign-out is pending.
func (l *LogoutCoordinator) State(ctx router.Context) LogoutState {
	if ctx.Cookies(l.markerCookie) != "" {
		return LogoutUpstreamPending
	}
	return LogoutIdle
}

// IsLogoutRequest reports whether the request targets the host's logout
// endpoint. Path comparison is exact; query strings are not part of
// router paths.
func (l *LogoutCoordinator) IsLogoutRequest(ctx router.Context) bool {
	return ctx.Path() == l.logoutPath
}

// MarkPending sets the marker cookie and lets the host's own logout
// handling run. Local session teardown stays the host's job.
func (l *LogoutCoordinator) MarkPending(ctx router.Context) error {
	ctx.Cookie(&router.Cookie{
		Name:     l.markerCookie,
		Value:    "true",
		Path:     "/",
		Expires:  time.Now().Add(logoutMarkerTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	return ctx.Next()
}

// Complete clears both the marker and the session cookie and redirects
// to the identity provider's sign-out endpoint. The marker is single
// use: it is always cleared here, whatever happens next. No downstream
// handler runs.
func (l *LogoutCoordinator) Complete(ctx router.Context) error {
	l.clearCookie(ctx, l.markerCookie)
	l.clearCookie(ctx, l.sessionCookie)

	target := l.signOutPath
	if l.upstreamURL != "" {
		target += "?rd=" + url.QueryEscape(l.upstreamURL)
	}

	l.logger.Info("completing upstream logout", "redirect", target)

	return ctx.Redirect(target, http.StatusFound)
}

func (l *LogoutCoordinator) clearCookie(ctx router.Context, name string) {
	ctx.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
