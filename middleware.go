package forwardauth

import (
	"strings"

	"github.com/goliatone/go-router"
)

// ForwardAuth is the request-interception layer. Per request it decides
// between pass-through, logout handling, and auto-login, in that order:
//
//  1. logout marker cookie present: complete the upstream sign-out
//  2. logout path: set the marker cookie, pass through
//  3. ignored path prefix: pass through
//  4. instance owner setup incomplete: pass through
//  5. session cookie already present: pass through
//  6. otherwise resolve identity and provision a session
type ForwardAuth struct {
	cfg          Config
	setup        SetupChecker
	logout       *LogoutCoordinator
	resolver     *Resolver
	provisioner  *Provisioner
	logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

// New builds the forward-auth layer around the host's user store and
// session issuance primitive.
func New(cfg Config, users UserStore, issuer SessionIssuer) (*ForwardAuth, error) {
	if users == nil {
		return nil, ErrNoUsers
	}
	if issuer == nil {
		return nil, ErrNoSessionIssuer
	}

	f := &ForwardAuth{
		cfg:         cfg,
		logout:      NewLogoutCoordinator(cfg),
		resolver:    NewResolver(cfg),
		provisioner: NewProvisioner(users, issuer),
		logger:      defLogger{},
	}

	f.ErrorHandler = f.defaultErrHandler

	return f, nil
}

// WithRoles enables direct role lookup during role completion.
func (f *ForwardAuth) WithRoles(roles RoleStore) *ForwardAuth {
	f.provisioner.WithRoles(roles)
	return f
}

// WithSetupChecker gates auto-login behind the host's first-run setup.
// Without one, setup is assumed complete.
func (f *ForwardAuth) WithSetupChecker(setup SetupChecker) *ForwardAuth {
	f.setup = setup
	return f
}

func (f *ForwardAuth) WithLogger(logger Logger) *ForwardAuth {
	f.logger = logger
	f.logout.WithLogger(logger)
	f.resolver.WithLogger(logger)
	f.provisioner.WithLogger(logger)
	return f
}

// Middleware returns the router middleware. With no trusted header
// configured the component disables itself and passes every request
// through untouched.
func (f *ForwardAuth) Middleware() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		if f.cfg.GetTrustedHeader() == "" {
			f.logger.Info("trusted header not configured, forward auth middleware disabled")
			return func(ctx router.Context) error {
				return ctx.Next()
			}
		}

		f.logger.Info("forward auth middleware initialized", "header", f.cfg.GetTrustedHeader())

		return func(ctx router.Context) error {
			if f.logout.State(ctx) == LogoutUpstreamPending {
				return f.logout.Complete(ctx)
			}

			if f.logout.IsLogoutRequest(ctx) {
				return f.logout.MarkPending(ctx)
			}

			if f.ignored(ctx.Path()) {
				return ctx.Next()
			}

			if f.setup != nil && !f.setup.IsOwnerSetUp(ctx.Context()) {
				return ctx.Next()
			}

			if ctx.Cookies(f.cfg.GetSessionCookieName()) != "" {
				return ctx.Next()
			}

			identity, ok := f.resolver.Resolve(ctx)
			if !ok {
				return ctx.Next()
			}

			f.logger.Info("auto-login attempt", "email", identity.Email)

			proceed, err := f.provisioner.Provision(ctx, identity)
			if err != nil {
				f.logger.Error("forward auth middleware error", "error", err)
				return f.ErrorHandler(ctx, err)
			}

			if !proceed {
				// terminal response already written (role gate)
				return nil
			}

			return ctx.Next()
		}
	}
}

func (f *ForwardAuth) ignored(path string) bool {
	for _, prefix := range f.cfg.GetIgnorePrefixes() {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// defaultErrHandler hands the error back to the host's router so its
// generic error stage can render it.
func (f *ForwardAuth) defaultErrHandler(c router.Context, err error) error {
	return err
}
