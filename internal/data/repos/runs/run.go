package runs

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/dbctx"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type RunRepo interface {
	Create(dbc dbctx.Context, run *course.ProcessingRun) (*course.ProcessingRun, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*course.ProcessingRun, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	ListRecent(dbc dbctx.Context, kind string, limit int) ([]*course.ProcessingRun, error)
}

type runRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRunRepo(db *gorm.DB, baseLog *logger.Logger) RunRepo {
	return &runRepo{
		db:  db,
		log: baseLog.With("repo", "RunRepo"),
	}
}

func (r *runRepo) Create(dbc dbctx.Context, run *course.ProcessingRun) (*course.ProcessingRun, error) {
	if run == nil {
		return nil, errors.New("nil run")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if strings.TrimSpace(run.Status) == "" {
		run.Status = course.RunStatusRunning
	}
	if err := dbc.DB(r.db).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// GetByID returns nil without error when the run does not exist.
func (r *runRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*course.ProcessingRun, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var run course.ProcessingRun
	err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}

func (r *runRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return dbc.DB(r.db).Model(&course.ProcessingRun{}).Where("id = ?", id).Updates(updates).Error
}

func (r *runRepo) ListRecent(dbc dbctx.Context, kind string, limit int) ([]*course.ProcessingRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := dbc.DB(r.db).Order("created_at DESC").Limit(limit)
	if kind = strings.TrimSpace(kind); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []*course.ProcessingRun
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
