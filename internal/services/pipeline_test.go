package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/aicourse-backend/internal/data/repos/runs"
	"github.com/yungbote/aicourse-backend/internal/data/repos/testutil"
	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/quizid"
	"github.com/yungbote/aicourse-backend/internal/modules/course/steps"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai/openaitest"
)

const waterBoils = "Water boils at 100 degrees Celsius at sea level. This is due to atmospheric pressure."

func waterRequest() course.ProcessVideoRequest {
	return course.ProcessVideoRequest{
		VideoID:    "video-1",
		Video:      waterBoils,
		Objectives: []course.Tag{{Name: "Understand physical properties"}},
		Skills:     []course.Tag{{Name: "Science"}},
	}
}

func waterBackend() *openaitest.Fake {
	return openaitest.New().
		OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
			return json.Marshal(map[string]string{
				"simplify1": waterBoils + " Pressure matters.",
				"simplify2": waterBoils + " Air pushes down on water, so pressure matters a lot.",
				"simplify3": waterBoils + " Imagine air as a heavy blanket pushing on a pot of water, so pressure matters a lot when cooking.",
			})
		}).
		OnJSON("quiz_generation", func(context.Context, string) ([]byte, error) {
			quiz := make([]map[string]any, 0, 20)
			for i := 0; i < 20; i++ {
				quiz = append(quiz, map[string]any{
					"question":           fmt.Sprintf("What is the boiling point of water at sea level in Celsius (variant %d)?", i),
					"question_type":      "multiple_choice",
					"post_assessment":    true,
					"question_level":     1 + i%6,
					"options":            []string{"90", "100", "120"},
					"correct_answer":     "100",
					"related_skills":     []map[string]string{{"name": "Science"}},
					"related_objectives": []map[string]string{{"name": "Understand physical properties"}},
					"alternative_questions": []map[string]any{{
						"question":        fmt.Sprintf("Does lower atmospheric pressure lower the boiling point (variant %d)?", i),
						"question_type":   "true_false",
						"post_assessment": true,
						"question_level":  3,
						"options":         []string{"True", "False"},
						"correct_answer":  "True",
					}},
				})
			}
			return json.Marshal(map[string]any{"quiz": quiz})
		})
}

func newDeps(fake *openaitest.Fake) steps.Deps {
	return steps.Deps{
		Log: logger.Nop(),
		Gen: gateway.New(logger.Nop(), fake, nil, 5),
	}
}

func TestProcessVideoWaterBoils(t *testing.T) {
	repo := runs.NewRunRepo(testutil.DB(t), logger.Nop())
	svc := NewPipelineService(logger.Nop(), newDeps(waterBackend()), repo)

	units, runID, err := svc.ProcessVideo(context.Background(), waterRequest())
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, waterBoils, u.Text)
	assert.Equal(t, "video-1", u.VideoID)
	assert.Empty(t, steps.GrowthViolations(u.Text, u.Simplifications))

	require.Len(t, u.Quiz, 20)
	require.NoError(t, quizid.Validate(u.Quiz))
	for _, q := range u.Quiz {
		assert.Equal(t, u.ID, q.ParagraphID)
		assert.NotContains(t, strings.ToLower(q.QuestionText), "the text")
		assert.True(t, course.ContainsOption(q.Options, q.CorrectAnswer))
		assert.Equal(t, q.QuestionID, q.RelatedSkills[0].QuestionID)
	}

	run, err := NewRunService(logger.Nop(), repo).Get(context.Background(), runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, course.RunStatusSucceeded, run.Status)
	assert.Equal(t, course.RunKindProcessVideo, run.Kind)
	assert.Equal(t, 1, run.Units)
	assert.Equal(t, "video-1", run.VideoID)
}

func TestProcessVideoFailureIsRecorded(t *testing.T) {
	fake := waterBackend().OnJSON("quiz_generation", func(context.Context, string) ([]byte, error) {
		return nil, errors.New("status 503")
	})
	repo := runs.NewRunRepo(testutil.DB(t), logger.Nop())
	svc := NewPipelineService(logger.Nop(), newDeps(fake), repo)

	units, runID, err := svc.ProcessVideo(context.Background(), waterRequest())
	require.Error(t, err)
	assert.Nil(t, units)
	require.NotEqual(t, uuid.Nil, runID)

	run, err := NewRunService(logger.Nop(), repo).Get(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, course.RunStatusFailed, run.Status)
	assert.Equal(t, "backend", run.ErrorKind)
	assert.Contains(t, run.Error, "status 503")
}

func TestProcessVideoWithoutRunStore(t *testing.T) {
	svc := NewPipelineService(logger.Nop(), newDeps(waterBackend()), nil)
	units, runID, err := svc.ProcessVideo(context.Background(), waterRequest())
	require.NoError(t, err)
	assert.Len(t, units, 1)
	assert.Equal(t, uuid.Nil, runID)
}

func TestGenerateQuizOverWholeTranscript(t *testing.T) {
	svc := NewPipelineService(logger.Nop(), newDeps(waterBackend()), nil)
	set, _, err := svc.GenerateQuiz(context.Background(), waterRequest())
	require.NoError(t, err)
	require.Len(t, set.Quiz, 20)
	require.NoError(t, quizid.Validate(set.Quiz))
	assert.Equal(t, "video-1", set.Quiz[0].ParagraphID)
}

func TestTranslateVideoKeepsIdentifiers(t *testing.T) {
	svc := NewPipelineService(logger.Nop(), newDeps(waterBackend()), nil)
	units, _, err := svc.ProcessVideo(context.Background(), waterRequest())
	require.NoError(t, err)

	fake := openaitest.New().
		OnJSON("content_translation", func(_ context.Context, user string) ([]byte, error) {
			var p course.TranslatableContentPart
			if err := json.Unmarshal([]byte(user), &p); err != nil {
				return nil, err
			}
			p.Paragraph = "El agua hierve."
			return json.Marshal(p)
		}).
		OnJSON("quiz_translation", func(_ context.Context, user string) ([]byte, error) {
			return []byte(user), nil
		})
	tr := NewTranslationService(logger.Nop(), newDeps(fake), nil)

	out, _, err := tr.TranslateVideo(context.Background(), units, "Spanish")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, units[0].ID, out[0].ID)
	assert.Equal(t, "El", out[0].StartWord)
	assert.Equal(t, "hierve", out[0].EndWord)
	assert.Equal(t, "Spanish", out[0].Language)
	for i, q := range out[0].Quiz {
		assert.Equal(t, units[0].Quiz[i].QuestionID, q.QuestionID)
		assert.Equal(t, units[0].Quiz[i].CorrectAnswerID, q.CorrectAnswerID)
	}
	require.NoError(t, quizid.Validate(out[0].Quiz))
}
