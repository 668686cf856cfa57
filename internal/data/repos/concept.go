package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modbridge/modbridge-backend/internal/domain"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

type ConceptRepo interface {
	Create(ctx context.Context, rows []*domain.ConceptNode) ([]*domain.ConceptNode, error)
	GetByNamePlatformVersion(ctx context.Context, name, platform, version string) (*domain.ConceptNode, error)
	ListNamesByPlatform(ctx context.Context, platform string) ([]string, error)
	UpsertByIdentity(ctx context.Context, row *domain.ConceptNode) error
	ArchiveByNames(ctx context.Context, names []string) error
}

type conceptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConceptRepo(db *gorm.DB, baseLog *logger.Logger) ConceptRepo {
	return &conceptRepo{db: db, log: baseLog.With("repo", "ConceptRepo")}
}

func (r *conceptRepo) Create(ctx context.Context, rows []*domain.ConceptNode) ([]*domain.ConceptNode, error) {
	if len(rows) == 0 {
		return []*domain.ConceptNode{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByNamePlatformVersion resolves the identity triple. A platform-specific
// row wins; a platform-neutral ("both") row is the fallback. A miss is
// (nil, nil).
func (r *conceptRepo) GetByNamePlatformVersion(ctx context.Context, name, platform, version string) (*domain.ConceptNode, error) {
	if name == "" {
		return nil, nil
	}
	var out []*domain.ConceptNode
	if err := r.db.WithContext(ctx).
		Where("name = ? AND minecraft_version = ? AND platform IN ?", name, version, []string{platform, "both"}).
		Limit(2).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	for _, row := range out {
		if row.Platform == platform {
			return row, nil
		}
	}
	return out[0], nil
}

func (r *conceptRepo) ListNamesByPlatform(ctx context.Context, platform string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&domain.ConceptNode{}).
		Where("platform IN ?", []string{platform, "both"}).
		Distinct().
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *conceptRepo) UpsertByIdentity(ctx context.Context, row *domain.ConceptNode) error {
	if row == nil {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}, {Name: "platform"}, {Name: "minecraft_version"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "expert_validated", "community_rating", "properties", "updated_at",
			}),
		}).
		Create(row).Error
}

// ArchiveByNames soft-deletes; historical paths keep referencing archived
// nodes, so rows are never hard-deleted.
func (r *conceptRepo) ArchiveByNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("name IN ?", names).
		Delete(&domain.ConceptNode{}).Error
}
