package forwardauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RoleSlugMember is the slug assigned to auto-provisioned users.
const RoleSlugMember = "global:member"

// Role is the host's role entity. A user without a role that carries a
// non-empty slug is not allowed to log in.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Slug          string     `bun:"slug,notnull,unique" json:"slug,omitempty"`
	DisplayName   string     `bun:"display_name" json:"display_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// User is the host's user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	PasswordHash  string     `bun:"password,notnull" json:"-"`
	RoleID        *uuid.UUID `bun:"role_id,nullzero,type:uuid" json:"role_id,omitempty"`
	Role          *Role      `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasUsableRole reports whether the user may receive a session cookie.
// The slug check mirrors the host's own login gate.
func (u *User) HasUsableRole() bool {
	return u != nil && u.Role != nil && u.Role.Slug != ""
}

// ApplyNames reconciles the identity's name fields against the stored
// values. Empty incoming values never overwrite; returns true when the
// record changed and needs a save.
func (u *User) ApplyNames(identity Identity) bool {
	changed := false
	if identity.FirstName != "" && u.FirstName != identity.FirstName {
		u.FirstName = identity.FirstName
		changed = true
	}
	if identity.LastName != "" && u.LastName != identity.LastName {
		u.LastName = identity.LastName
		changed = true
	}
	return changed
}
