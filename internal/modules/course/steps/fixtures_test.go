package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai/openaitest"
)

func testDeps(fake *openaitest.Fake, cfg Config) Deps {
	var n atomic.Int64
	return Deps{
		Log:    logger.Nop(),
		Gen:    gateway.New(logger.Nop(), fake, nil, 5),
		Config: cfg,
		NewID: func() string {
			return fmt.Sprintf("gen-%d", n.Add(1))
		},
	}
}

// scriptOf extracts the text between "##Script:" and the next section of a rendered prompt.
func scriptOf(user string) string {
	s := user
	if i := strings.Index(s, "##Script:"); i >= 0 {
		s = s[i+len("##Script:"):]
	}
	if i := strings.Index(s, "\n##"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func growingSimplify(_ context.Context, user string) ([]byte, error) {
	p := scriptOf(user)
	return json.Marshal(map[string]string{
		"simplify1": p + " In short, this matters.",
		"simplify2": p + " Put simply, this matters a lot for everyday life.",
		"simplify3": p + " Imagine a kettle on a stove: this matters a lot for everyday life and for cooking.",
	})
}

type quizOpt func(i int, q map[string]any)

func quizReplyJSON(n int, opts ...quizOpt) []byte {
	quiz := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		q := map[string]any{
			"question":        fmt.Sprintf("At what temperature does water boil at sea level (%d)?", i),
			"question_type":   "multiple_choice",
			"post_assessment": false,
			"question_level":  1 + i%6,
			"options":         []string{"90 degrees", "100 degrees", "110 degrees"},
			"correct_answer":  "100 degrees",
			"related_skills": []map[string]string{
				{"name": "Physics"},
				{"name": "science"},
			},
			"related_objectives": []map[string]string{
				{"name": "Understand physical properties"},
			},
			"alternative_questions": []map[string]any{
				{
					"question":        fmt.Sprintf("Is the boiling point of water lower on a mountain (%d)?", i),
					"question_type":   "true_false",
					"post_assessment": true,
					"question_level":  2,
					"options":         []string{"True", "False"},
					"correct_answer":  "True",
				},
			},
		}
		for _, o := range opts {
			o(i, q)
		}
		quiz = append(quiz, q)
	}
	b, _ := json.Marshal(map[string]any{"quiz": quiz})
	return b
}

// prefixContent translates a content payload by prefixing every text and tag name.
func prefixContent(prefix string) openaitest.JSONFunc {
	return func(_ context.Context, user string) ([]byte, error) {
		var part course.TranslatableContentPart
		if err := json.Unmarshal([]byte(user), &part); err != nil {
			return nil, err
		}
		part.Paragraph = prefix + part.Paragraph
		part.Simplify1 = prefix + part.Simplify1
		part.Simplify2 = prefix + part.Simplify2
		part.Simplify3 = prefix + part.Simplify3
		for i := range part.Objectives {
			part.Objectives[i].Name = prefix + part.Objectives[i].Name
		}
		for i := range part.Skills {
			part.Skills[i].Name = prefix + part.Skills[i].Name
		}
		return json.Marshal(part)
	}
}

// prefixQuiz translates a quiz payload by prefixing every text and keeping every id.
func prefixQuiz(prefix string, mutate func(*course.TranslatableQuizPart)) openaitest.JSONFunc {
	return func(_ context.Context, user string) ([]byte, error) {
		var part course.TranslatableQuizPart
		if err := json.Unmarshal([]byte(user), &part); err != nil {
			return nil, err
		}
		for i := range part.Questions {
			q := &part.Questions[i]
			q.Question = prefix + q.Question
			prefixAll(prefix, q.Options, q.Answers)
			for j := range q.Alternatives {
				a := &q.Alternatives[j]
				a.Question = prefix + a.Question
				prefixAll(prefix, a.Options, a.Answers)
			}
		}
		if mutate != nil {
			mutate(&part)
		}
		return json.Marshal(part)
	}
}

func prefixAll(prefix string, options []string, answers []course.TranslatableAnswer) {
	for k := range options {
		options[k] = prefix + options[k]
	}
	for k := range answers {
		answers[k].Text = prefix + answers[k].Text
	}
}
