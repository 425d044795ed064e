package forwardauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Roles is the read surface the provisioner needs from the role store.
type Roles interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindBySlug(ctx context.Context, slug string) (*Role, error)
}

var _ RoleStore = (Roles)(nil)

// RolesRepository implements Roles using Bun.
type RolesRepository struct {
	db *bun.DB
}

func NewRolesRepository(db *bun.DB) *RolesRepository {
	return &RolesRepository{db: db}
}

func (r *RolesRepository) FindByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	record := &Role{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (r *RolesRepository) FindBySlug(ctx context.Context, slug string) (*Role, error) {
	record := &Role{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.slug = ?", strings.TrimSpace(slug)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"slug": slug})
		}
		return nil, err
	}

	return record, nil
}
