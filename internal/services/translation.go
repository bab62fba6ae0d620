package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/data/repos/runs"
	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/steps"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type TranslationService interface {
	TranslateVideo(ctx context.Context, units []course.ContentUnit, language string) ([]course.ContentUnit, uuid.UUID, error)
	TranslateCourseMeta(ctx context.Context, w course.CourseWrapper, language string) (course.CourseWrapper, uuid.UUID, error)
}

type translationService struct {
	log  *logger.Logger
	deps steps.Deps
	runs runRecorder
}

func NewTranslationService(baseLog *logger.Logger, deps steps.Deps, repo runs.RunRepo) TranslationService {
	log := baseLog.With("service", "TranslationService")
	deps.Log = log
	return &translationService{
		log:  log,
		deps: deps,
		runs: runRecorder{log: log, repo: repo},
	}
}

func (s *translationService) TranslateVideo(ctx context.Context, units []course.ContentUnit, language string) ([]course.ContentUnit, uuid.UUID, error) {
	videoID := ""
	if len(units) > 0 {
		videoID = units[0].VideoID
	}
	run := s.runs.begin(ctx, course.RunKindTranslateVideo, language, videoID)
	out, err := steps.TranslateUnits(ctx, s.deps, units, language)
	s.runs.finish(ctx, run, len(out), out, err)
	if err != nil {
		s.log.Error("Translate video failed", "language", language, "units", len(units), "error", err)
		return nil, run.id, err
	}
	return out, run.id, nil
}

func (s *translationService) TranslateCourseMeta(ctx context.Context, w course.CourseWrapper, language string) (course.CourseWrapper, uuid.UUID, error) {
	run := s.runs.begin(ctx, course.RunKindTranslateMeta, language, "")
	out, err := steps.TranslateCourseMeta(ctx, s.deps, w, language)
	s.runs.finish(ctx, run, len(out.Course.Chapters), out, err)
	if err != nil {
		s.log.Error("Translate course meta failed", "language", language, "course_id", w.Course.ID, "error", err)
		return course.CourseWrapper{}, run.id, err
	}
	return out, run.id, nil
}
