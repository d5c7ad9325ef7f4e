package audit

import (
	"gorm.io/gorm"

	types "github.com/yungbote/patchbridge-backend/internal/domain/library"
	"github.com/yungbote/patchbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

type PatchEventRepo interface {
	Create(dbc dbctx.Context, events []*types.PatchEvent) ([]*types.PatchEvent, error)
	ListByResource(dbc dbctx.Context, resource string, resourceID uint, limit int) ([]*types.PatchEvent, error)
}

type patchEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatchEventRepo(db *gorm.DB, baseLog *logger.Logger) PatchEventRepo {
	return &patchEventRepo{
		db:  db,
		log: baseLog.With("repo", "PatchEventRepo"),
	}
}

func (r *patchEventRepo) Create(dbc dbctx.Context, events []*types.PatchEvent) ([]*types.PatchEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(events) == 0 {
		return []*types.PatchEvent{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListByResource returns the newest events first. limit <= 0 returns all of them.
func (r *patchEventRepo) ListByResource(dbc dbctx.Context, resource string, resourceID uint, limit int) ([]*types.PatchEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.PatchEvent
	if resource == "" || resourceID == 0 {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("resource = ? AND resource_id = ?", resource, resourceID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
