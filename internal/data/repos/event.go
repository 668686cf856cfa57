package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/modbridge/modbridge-backend/internal/domain"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

// EventRepo is append-only: events back the statistics window and the
// learning audit trail, so nothing here updates or deletes.
type EventRepo interface {
	RecordInference(ctx context.Context, ev *domain.InferenceEvent) error
	RecordLearning(ctx context.Context, ev *domain.LearningEvent) error
	ListInferencesSince(ctx context.Context, since time.Time) ([]*domain.InferenceEvent, error)
	ListLearningsSince(ctx context.Context, since time.Time) ([]*domain.LearningEvent, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (r *eventRepo) RecordInference(ctx context.Context, ev *domain.InferenceEvent) error {
	if ev == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *eventRepo) RecordLearning(ctx context.Context, ev *domain.LearningEvent) error {
	if ev == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *eventRepo) ListInferencesSince(ctx context.Context, since time.Time) ([]*domain.InferenceEvent, error) {
	var out []*domain.InferenceEvent
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) ListLearningsSince(ctx context.Context, since time.Time) ([]*domain.LearningEvent, error) {
	var out []*domain.LearningEvent
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
