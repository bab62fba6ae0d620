package quizid

import (
	"fmt"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

// Validate checks a rewritten quiz: each question and alternative has exactly one answer
// with its correct id, every answer points at its owner and no id repeats anywhere.
func Validate(questions []course.QuizQuestion) error {
	seen := map[string]string{}
	claim := func(id, what string) error {
		if id == "" {
			return fmt.Errorf("%s has an empty id", what)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%s reuses id %q of %s", what, id, prev)
		}
		seen[id] = what
		return nil
	}

	check := func(label, qid, correct string, answers []course.Answer) error {
		if err := claim(qid, label); err != nil {
			return err
		}
		hits := 0
		for k, a := range answers {
			if err := claim(a.AnswerID, fmt.Sprintf("%s answer %d", label, k)); err != nil {
				return err
			}
			if a.QuestionID != qid {
				return fmt.Errorf("%s answer %d points at question %q", label, k, a.QuestionID)
			}
			if a.AnswerID == correct {
				hits++
			}
		}
		if hits != 1 {
			return fmt.Errorf("%s has %d answers with its correct id", label, hits)
		}
		return nil
	}

	for i, q := range questions {
		label := fmt.Sprintf("question %d", i)
		if err := check(label, q.QuestionID, q.CorrectAnswerID, q.Answers); err != nil {
			return apierr.IdentityCollision("validate quiz ids", err)
		}
		for j, a := range q.AlternativeQuestions {
			altLabel := fmt.Sprintf("%s alternative %d", label, j)
			if err := check(altLabel, a.QuestionID, a.CorrectAnswerID, a.Answers); err != nil {
				return apierr.IdentityCollision("validate quiz ids", err)
			}
		}
	}
	return nil
}
