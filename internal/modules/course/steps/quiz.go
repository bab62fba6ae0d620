package steps

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

type quizReply struct {
	Quiz []generatedQuestion `json:"quiz"`
}

type generatedQuestion struct {
	Question          string                 `json:"question"`
	Type              course.QuestionType    `json:"question_type"`
	PostAssessment    bool                   `json:"post_assessment"`
	Level             int                    `json:"question_level"`
	Options           []string               `json:"options"`
	CorrectAnswer     string                 `json:"correct_answer"`
	RelatedSkills     []course.Tag           `json:"related_skills"`
	RelatedObjectives []course.Tag           `json:"related_objectives"`
	Alternatives      []generatedAlternative `json:"alternative_questions"`
}

type generatedAlternative struct {
	Question       string              `json:"question"`
	Type           course.QuestionType `json:"question_type"`
	PostAssessment bool                `json:"post_assessment"`
	Level          int                 `json:"question_level"`
	Options        []string            `json:"options"`
	CorrectAnswer  string              `json:"correct_answer"`
}

var (
	trueFalseLeadIn = regexp.MustCompile(`(?i)^\W*true\s*(or|/)\s*false\b`)
	sourceReference = regexp.MustCompile(`(?i)\b(the|this)\s+(text|video|script|passage)\b`)
)

// GenerateQuiz produces the unit's quiz. Ids are provisional: every answer gets a local
// id and the correct one is linked by CorrectAnswerID, ready for the identity rewrite.
func GenerateQuiz(ctx context.Context, deps Deps, unit course.ContentUnit) ([]course.QuizQuestion, error) {
	const op = "generate quiz"
	deps, err := deps.check(op)
	if err != nil {
		return nil, err
	}
	lang := unit.Language
	if lang == "" {
		lang = course.DefaultLanguage
	}

	reply, err := gateway.Generate[quizReply](ctx, deps.Gen, prompts.PromptGenerateQuiz, prompts.Input{
		ParagraphText:  unit.Text,
		SkillsJSON:     mustJSON(course.TagNames(unit.Skills)),
		ObjectivesJSON: mustJSON(course.TagNames(unit.Objectives)),
		Language:       lang,
		QuizSize:       deps.Config.QuizSize,
	})
	if err != nil {
		return nil, err
	}
	if len(reply.Quiz) != deps.Config.QuizSize {
		return nil, apierr.Backendf(op, "expected %d questions, got %d", deps.Config.QuizSize, len(reply.Quiz))
	}

	out := make([]course.QuizQuestion, 0, len(reply.Quiz))
	for i, g := range reply.Quiz {
		q, err := buildQuestion(g, unit.Skills, unit.Objectives)
		if err != nil {
			return nil, apierr.Backend(op, fmt.Errorf("question %d: %w", i, err))
		}
		out = append(out, q)
	}
	return out, nil
}

// GenerateQuizzes fills the quiz of every unit concurrently.
func GenerateQuizzes(ctx context.Context, deps Deps, units []course.ContentUnit) ([]course.ContentUnit, error) {
	deps, err := deps.check("generate quizzes")
	if err != nil {
		return nil, err
	}
	out, err := fanOut(ctx, deps.Config.FanoutLimit, units, func(ctx context.Context, _ int, u course.ContentUnit) (course.ContentUnit, error) {
		quiz, err := GenerateQuiz(ctx, deps, u)
		if err != nil {
			return course.ContentUnit{}, err
		}
		u.Quiz = quiz
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	deps.Log.Info("Generated quizzes", "units", len(out))
	return out, nil
}

func buildQuestion(g generatedQuestion, skills, objectives []course.Tag) (course.QuizQuestion, error) {
	correctID, answers, err := checkGenerated(g.Question, g.Type, g.Level, g.Options, g.CorrectAnswer)
	if err != nil {
		return course.QuizQuestion{}, err
	}
	skill := mostRelevantSkill(g.RelatedSkills, skills)
	objs := course.SubsetOf(g.RelatedObjectives, objectives)

	q := course.QuizQuestion{
		QuestionText:         strings.TrimSpace(g.Question),
		Type:                 g.Type,
		Level:                g.Level,
		PostAssessment:       true,
		Options:              append([]string{}, g.Options...),
		CorrectAnswer:        g.CorrectAnswer,
		CorrectAnswerID:      correctID,
		Answers:              answers,
		RelatedSkills:        skill,
		RelatedObjectives:    objs,
		AlternativeQuestions: make([]course.AlternativeQuestion, 0, len(g.Alternatives)),
	}
	for j, a := range g.Alternatives {
		altCorrect, altAnswers, err := checkGenerated(a.Question, a.Type, a.Level, a.Options, a.CorrectAnswer)
		if err != nil {
			return course.QuizQuestion{}, fmt.Errorf("alternative %d: %w", j, err)
		}
		q.AlternativeQuestions = append(q.AlternativeQuestions, course.AlternativeQuestion{
			QuestionText:      strings.TrimSpace(a.Question),
			Type:              a.Type,
			Level:             a.Level,
			PostAssessment:    true,
			Options:           append([]string{}, a.Options...),
			CorrectAnswer:     a.CorrectAnswer,
			CorrectAnswerID:   altCorrect,
			Answers:           altAnswers,
			RelatedSkills:     course.CloneTags(skill),
			RelatedObjectives: course.CloneTags(objs),
		})
	}
	return q, nil
}

// checkGenerated enforces the per-question rules and derives one provisional answer per
// option. It returns the provisional id of the correct answer.
func checkGenerated(text string, typ course.QuestionType, level int, options []string, correct string) (string, []course.Answer, error) {
	switch {
	case strings.TrimSpace(text) == "":
		return "", nil, fmt.Errorf("empty question text")
	case !typ.Valid():
		return "", nil, fmt.Errorf("unknown question type %q", typ)
	case level < course.MinQuestionLevel || level > course.MaxQuestionLevel:
		return "", nil, fmt.Errorf("question level %d outside %d..%d", level, course.MinQuestionLevel, course.MaxQuestionLevel)
	case len(options) == 0:
		return "", nil, fmt.Errorf("no options")
	case trueFalseLeadIn.MatchString(text):
		return "", nil, fmt.Errorf("question starts with a true or false lead-in: %q", text)
	case sourceReference.MatchString(text):
		return "", nil, fmt.Errorf("question references its source: %q", text)
	}
	idx := course.OptionIndex(options, correct)
	if idx < 0 {
		return "", nil, fmt.Errorf("correct answer %q is not one of the options", correct)
	}
	answers := make([]course.Answer, len(options))
	for i, o := range options {
		answers[i] = course.Answer{AnswerID: fmt.Sprintf("option-%d", i+1), Text: o}
	}
	return answers[idx].AnswerID, answers, nil
}

// mostRelevantSkill keeps one skill: the first generated tag found in the input list,
// else the first input skill.
func mostRelevantSkill(generated, input []course.Tag) []course.Tag {
	if m := course.SubsetOf(generated, input); len(m) > 0 {
		return []course.Tag{m[0]}
	}
	if in := course.DedupeTags(input); len(in) > 0 {
		return []course.Tag{in[0]}
	}
	return []course.Tag{}
}
