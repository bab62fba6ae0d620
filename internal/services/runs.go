package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/aicourse-backend/internal/data/repos/runs"
	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/ctxutil"
	"github.com/yungbote/aicourse-backend/internal/platform/dbctx"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type RunService interface {
	Get(ctx context.Context, id uuid.UUID) (*course.ProcessingRun, error)
	ListRecent(ctx context.Context, kind string, limit int) ([]*course.ProcessingRun, error)
}

type runService struct {
	log  *logger.Logger
	repo runs.RunRepo
}

func NewRunService(baseLog *logger.Logger, repo runs.RunRepo) RunService {
	return &runService{log: baseLog.With("service", "RunService"), repo: repo}
}

func (s *runService) Get(ctx context.Context, id uuid.UUID) (*course.ProcessingRun, error) {
	if s.repo == nil {
		return nil, apierr.Validationf("get run", "run store is not configured")
	}
	run, err := s.repo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Store("get run", err)
	}
	return run, nil
}

func (s *runService) ListRecent(ctx context.Context, kind string, limit int) ([]*course.ProcessingRun, error) {
	if s.repo == nil {
		return nil, apierr.Validationf("list runs", "run store is not configured")
	}
	out, err := s.repo.ListRecent(dbctx.Context{Ctx: ctx}, kind, limit)
	if err != nil {
		return nil, apierr.Store("list runs", err)
	}
	return out, nil
}

// runRecorder writes a processing_run row around a pipeline call. Recording is best
// effort: a failing store never fails the pipeline. A nil repo disables it.
type runRecorder struct {
	log  *logger.Logger
	repo runs.RunRepo
}

type runHandle struct {
	id    uuid.UUID
	start time.Time
}

func (r runRecorder) begin(ctx context.Context, kind, language, videoID string) runHandle {
	h := runHandle{start: time.Now()}
	if r.repo == nil {
		return h
	}
	run, err := r.repo.Create(dbctx.Context{Ctx: ctx}, &course.ProcessingRun{
		Kind:      kind,
		Status:    course.RunStatusRunning,
		Language:  language,
		VideoID:   videoID,
		RequestID: ctxutil.RequestID(ctx),
	})
	if err != nil {
		r.log.Warn("Failed to record run start", "kind", kind, "error", err)
		return h
	}
	h.id = run.ID
	return h
}

func (r runRecorder) finish(ctx context.Context, h runHandle, units int, result any, runErr error) {
	elapsed := time.Since(h.start)
	if r.repo == nil || h.id == uuid.Nil {
		return
	}
	updates := map[string]interface{}{
		"units":       units,
		"duration_ms": elapsed.Milliseconds(),
	}
	if runErr != nil {
		updates["status"] = course.RunStatusFailed
		updates["error"] = runErr.Error()
		updates["error_kind"] = string(apierr.KindOf(runErr))
	} else {
		updates["status"] = course.RunStatusSucceeded
		if b, err := json.Marshal(result); err == nil {
			updates["result"] = datatypes.JSON(b)
		}
	}
	// the request context may already be cancelled
	if err := r.repo.UpdateFields(dbctx.Context{Ctx: context.WithoutCancel(ctx)}, h.id, updates); err != nil {
		r.log.Warn("Failed to record run result", "run_id", h.id, "error", err)
	}
}
