package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/modbridge/modbridge-backend/internal/domain"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

type ConversionPatternRepo interface {
	Create(ctx context.Context, rows []*domain.ConversionPattern) ([]*domain.ConversionPattern, error)
	ListByTransformationType(ctx context.Context, transformationType string) ([]*domain.ConversionPattern, error)
	ListBySourceConcept(ctx context.Context, sourceConcept string) ([]*domain.ConversionPattern, error)
}

type conversionPatternRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversionPatternRepo(db *gorm.DB, baseLog *logger.Logger) ConversionPatternRepo {
	return &conversionPatternRepo{db: db, log: baseLog.With("repo", "ConversionPatternRepo")}
}

func (r *conversionPatternRepo) Create(ctx context.Context, rows []*domain.ConversionPattern) ([]*domain.ConversionPattern, error) {
	if len(rows) == 0 {
		return []*domain.ConversionPattern{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *conversionPatternRepo) ListByTransformationType(ctx context.Context, transformationType string) ([]*domain.ConversionPattern, error) {
	var out []*domain.ConversionPattern
	if transformationType == "" {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("transformation_type = ?", transformationType).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conversionPatternRepo) ListBySourceConcept(ctx context.Context, sourceConcept string) ([]*domain.ConversionPattern, error) {
	var out []*domain.ConversionPattern
	if sourceConcept == "" {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("source_concept = ?", sourceConcept).
		Order("confidence DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
