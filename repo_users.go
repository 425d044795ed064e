package forwardauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the Bun-backed user store. It satisfies UserStore so the
// middleware can consume it directly; hosts with their own persistence
// implement UserStore instead.
type Users interface {
	repository.Repository[*User]

	FindByEmail(ctx context.Context, email string, withRole bool) (*User, error)
	FindByEmailTx(ctx context.Context, tx bun.IDB, email string, withRole bool) (*User, error)
	CreateWithDefaultRole(ctx context.Context, record *User) (*User, error)
	CreateWithDefaultRoleTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Save(ctx context.Context, record *User) (*User, error)
	SaveTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
}

var _ UserStore = (Users)(nil)

type users struct {
	repository.Repository[*User]
	db              *bun.DB
	roles           Roles
	defaultRoleSlug string
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

type UsersOption func(*users)

// WithDefaultRoleSlug overrides the slug assigned to auto-created users.
func WithDefaultRoleSlug(slug string) UsersOption {
	return func(u *users) {
		if slug != "" {
			u.defaultRoleSlug = slug
		}
	}
}

func NewUsersRepository(db *bun.DB, roles Roles, opts ...UsersOption) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	repoUsers := &users{
		Repository:      repo,
		db:              db,
		roles:           roles,
		defaultRoleSlug: RoleSlugMember,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(repoUsers)
		}
	}

	return repoUsers
}

func (a *users) FindByEmail(ctx context.Context, email string, withRole bool) (*User, error) {
	return a.FindByEmailTx(ctx, a.db, email, withRole)
}

func (a *users) FindByEmailTx(ctx context.Context, tx bun.IDB, email string, withRole bool) (*User, error) {
	record := &User{}

	q := tx.NewSelect().Model(record)
	if withRole {
		q = q.Relation("Role")
	}

	err := q.
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) CreateWithDefaultRole(ctx context.Context, record *User) (*User, error) {
	return a.CreateWithDefaultRoleTx(ctx, a.db, record)
}

func (a *users) CreateWithDefaultRoleTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if err := prepareUserDefaults(record); err != nil {
		return nil, err
	}

	role, err := a.roles.FindBySlug(ctx, a.defaultRoleSlug)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, errors.Wrap(ErrDefaultRoleMissing, errors.CategoryInternal, "cannot assign default role").
				WithMetadata(map[string]any{"slug": a.defaultRoleSlug})
		}
		return nil, err
	}

	record.RoleID = &role.ID

	created, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	created.Role = role

	return created, nil
}

func (a *users) Save(ctx context.Context, record *User) (*User, error) {
	return a.SaveTx(ctx, a.db, record)
}

func (a *users) SaveTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	saved, err := a.Repository.UpdateTx(ctx, tx, record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		return nil, err
	}

	// UpdateTx does not carry relations; keep the one already loaded.
	if saved.Role == nil {
		saved.Role = record.Role
	}

	return saved, nil
}

func prepareUserDefaults(record *User) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.PasswordHash == "" {
		hash, err := RandomPasswordHash()
		if err != nil {
			return err
		}
		record.PasswordHash = hash
	}

	return nil
}
