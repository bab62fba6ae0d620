package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/data/repos/runs"
	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/quizid"
	"github.com/yungbote/aicourse-backend/internal/modules/course/steps"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type PipelineService interface {
	// ProcessVideo segments, simplifies and quizzes a transcript. Quizzes carry final ids.
	ProcessVideo(ctx context.Context, req course.ProcessVideoRequest) ([]course.ContentUnit, uuid.UUID, error)
	// GenerateQuiz builds one quiz over the whole transcript.
	GenerateQuiz(ctx context.Context, req course.ProcessVideoRequest) (course.QuizSet, uuid.UUID, error)
}

type pipelineService struct {
	log  *logger.Logger
	deps steps.Deps
	ids  quizid.IDSource
	runs runRecorder
}

func NewPipelineService(baseLog *logger.Logger, deps steps.Deps, repo runs.RunRepo) PipelineService {
	log := baseLog.With("service", "PipelineService")
	deps.Log = log
	return &pipelineService{
		log:  log,
		deps: deps,
		ids:  quizid.NewUUID,
		runs: runRecorder{log: log, repo: repo},
	}
}

func (s *pipelineService) ProcessVideo(ctx context.Context, req course.ProcessVideoRequest) ([]course.ContentUnit, uuid.UUID, error) {
	run := s.runs.begin(ctx, course.RunKindProcessVideo, req.LanguageOrDefault(), req.VideoID)
	units, err := s.processVideo(ctx, req)
	s.runs.finish(ctx, run, len(units), units, err)
	if err != nil {
		s.log.Error("Process video failed", "video_id", req.VideoID, "error", err)
		return nil, run.id, err
	}
	return units, run.id, nil
}

func (s *pipelineService) processVideo(ctx context.Context, req course.ProcessVideoRequest) ([]course.ContentUnit, error) {
	paragraphs, err := steps.Segment(ctx, s.deps, req)
	if err != nil {
		return nil, err
	}
	units, err := steps.SimplifyAll(ctx, s.deps, paragraphs)
	if err != nil {
		return nil, err
	}
	units, err = steps.GenerateQuizzes(ctx, s.deps, units)
	if err != nil {
		return nil, err
	}
	for i := range units {
		units[i].VideoID = req.VideoID
		units[i].Quiz, err = s.finalizeQuiz(units[i].Quiz, units[i].ID)
		if err != nil {
			return nil, err
		}
	}
	s.log.Info("Processed video", "video_id", req.VideoID, "units", len(units))
	return units, nil
}

func (s *pipelineService) GenerateQuiz(ctx context.Context, req course.ProcessVideoRequest) (course.QuizSet, uuid.UUID, error) {
	run := s.runs.begin(ctx, course.RunKindGenerateQuiz, req.LanguageOrDefault(), req.VideoID)
	set, err := s.generateQuiz(ctx, req)
	s.runs.finish(ctx, run, len(set.Quiz), set, err)
	if err != nil {
		s.log.Error("Generate quiz failed", "video_id", req.VideoID, "error", err)
		return course.QuizSet{}, run.id, err
	}
	return set, run.id, nil
}

func (s *pipelineService) generateQuiz(ctx context.Context, req course.ProcessVideoRequest) (course.QuizSet, error) {
	if req.Video == "" {
		return course.QuizSet{}, apierr.Validationf("generate quiz", "video transcript is required")
	}
	paragraphID := req.VideoID
	if paragraphID == "" {
		paragraphID = uuid.NewString()
	}
	unit := course.ContentUnit{
		VideoID: req.VideoID,
		Paragraph: course.Paragraph{
			ID:         paragraphID,
			Text:       req.Video,
			Objectives: req.Objectives,
			Skills:     req.Skills,
			Language:   req.LanguageOrDefault(),
		},
	}
	quiz, err := steps.GenerateQuiz(ctx, s.deps, unit)
	if err != nil {
		return course.QuizSet{}, err
	}
	quiz, err = s.finalizeQuiz(quiz, paragraphID)
	if err != nil {
		return course.QuizSet{}, err
	}
	return course.QuizSet{Quiz: quiz}, nil
}

// finalizeQuiz assigns final ids and re-checks the linkage before anything leaves the service.
func (s *pipelineService) finalizeQuiz(quiz []course.QuizQuestion, paragraphID string) ([]course.QuizQuestion, error) {
	out, err := quizid.Rewrite(quiz, paragraphID, s.ids)
	if err != nil {
		return nil, err
	}
	if err := quizid.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
