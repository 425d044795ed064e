package forwardauth

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
)

// Provisioner maps a resolved identity onto a host user record and, when
// the record carries a usable role, issues the host session cookie.
type Provisioner struct {
	users  UserStore
	roles  RoleStore
	issuer SessionIssuer
	logger Logger
}

func NewProvisioner(users UserStore, issuer SessionIssuer) *Provisioner {
	return &Provisioner{
		users:  users,
		issuer: issuer,
		logger: defLogger{},
	}
}

// WithRoles enables direct role lookup for stores that keep the role
// relation lazy.
func (p *Provisioner) WithRoles(roles RoleStore) *Provisioner {
	p.roles = roles
	return p
}

func (p *Provisioner) WithLogger(logger Logger) *Provisioner {
	p.logger = logger
	return p
}

// Provision finds or creates the user for the identity, reconciles name
// fields, enforces the role gate, and issues the session cookie.
//
// It returns proceed=true when the downstream handler should run with
// the user attached. A role-less user gets a 401 written here and
// proceed=false with no error. Store failures return an error for the
// caller's generic error handling; the response is left untouched.
func (p *Provisioner) Provision(ctx router.Context, identity Identity) (bool, error) {
	user, err := p.users.FindByEmail(ctx.Context(), identity.Email, true)
	if err != nil && !repository.IsRecordNotFound(err) {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to look up user").
			WithMetadata(map[string]any{"email": identity.Email})
	}

	if user == nil {
		if user, err = p.createUser(ctx.Context(), identity); err != nil {
			return false, err
		}
		p.logger.Info("created new user via forward auth", "email", identity.Email)
	} else if user.ApplyNames(identity) {
		if user, err = p.users.Save(ctx.Context(), user); err != nil {
			return false, errors.Wrap(err, errors.CategoryInternal, "failed to update user names").
				WithMetadata(map[string]any{"email": identity.Email})
		}
	}

	if user, err = p.completeRole(ctx.Context(), user); err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to resolve user role").
			WithMetadata(map[string]any{"email": identity.Email})
	}

	if !user.HasUsableRole() {
		msg := fmt.Sprintf("User %s has no valid role. Ask admin to assign a role.", identity.Email)
		return false, ctx.Status(router.StatusUnauthorized).SendString(msg)
	}

	if err := p.issuer.IssueSessionCookie(ctx, user); err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to issue session cookie").
			WithMetadata(map[string]any{"email": identity.Email})
	}

	ctx.Locals(LocalsUserKey, user)
	ctx.SetContext(WithContext(ctx.Context(), user))

	return true, nil
}

func (p *Provisioner) createUser(ctx context.Context, identity Identity) (*User, error) {
	hash, err := RandomPasswordHash()
	if err != nil {
		return nil, err
	}

	record := &User{
		Email:        identity.Email,
		FirstName:    identity.FirstName,
		LastName:     identity.LastName,
		PasswordHash: hash,
	}

	user, err := p.users.CreateWithDefaultRole(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user").
			WithMetadata(map[string]any{"email": identity.Email})
	}

	return user, nil
}

// completeRole fills in the role relation when the store did not load
// it eagerly: first a direct fetch by role id, else a full reload with
// the relation. A still-missing role is not an error here; the slug
// gate in Provision handles it.
func (p *Provisioner) completeRole(ctx context.Context, user *User) (*User, error) {
	if user.Role != nil {
		return user, nil
	}

	if user.RoleID != nil && p.roles != nil {
		role, err := p.roles.FindByID(ctx, *user.RoleID)
		if err != nil && !repository.IsRecordNotFound(err) {
			return nil, err
		}
		user.Role = role
		return user, nil
	}

	reloaded, err := p.users.FindByEmail(ctx, user.Email, true)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return user, nil
		}
		return nil, err
	}
	if reloaded != nil {
		return reloaded, nil
	}

	return user, nil
}
