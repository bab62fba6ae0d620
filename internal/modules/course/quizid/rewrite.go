// Package quizid assigns final identifiers to a generated quiz and rewires every
// reference to them.
package quizid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

const op = "quiz identity rewrite"

// IDSource yields a new identifier per call.
type IDSource func() string

// NewUUID is the default IDSource.
func NewUUID() string { return uuid.NewString() }

type rewriter struct {
	ids  IDSource
	seen map[string]struct{}
}

// Rewrite returns copies of questions with fresh question, answer and alternative ids.
// The answer that carried a question's previous correct id becomes the single correct
// answer under the new id; if several did, the first in list order wins. Every answer
// points at its owning question, every tag is stamped with its question id and every
// question carries paragraphID. A question whose correct id matches none of its answers
// fails the whole pass. The input is not modified.
func Rewrite(questions []course.QuizQuestion, paragraphID string, ids IDSource) ([]course.QuizQuestion, error) {
	if ids == nil {
		ids = NewUUID
	}
	rw := &rewriter{ids: ids, seen: map[string]struct{}{}}

	out := make([]course.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		nq, err := rw.question(q, paragraphID)
		if err != nil {
			return nil, apierr.IdentityCollision(op, fmt.Errorf("question %d: %w", i, err))
		}
		out = append(out, nq)
	}
	return out, nil
}

func (rw *rewriter) question(q course.QuizQuestion, paragraphID string) (course.QuizQuestion, error) {
	qid, correct, answers, err := rw.core(q.CorrectAnswerID, q.Answers)
	if err != nil {
		return course.QuizQuestion{}, err
	}

	q.QuestionID = qid
	q.ParagraphID = paragraphID
	q.CorrectAnswerID = correct
	q.Answers = answers
	q.Options = append([]string{}, q.Options...)
	q.RelatedSkills = stamp(q.RelatedSkills, qid)
	q.RelatedObjectives = stamp(q.RelatedObjectives, qid)

	alts := make([]course.AlternativeQuestion, 0, len(q.AlternativeQuestions))
	for j, a := range q.AlternativeQuestions {
		na, err := rw.alternative(a)
		if err != nil {
			return course.QuizQuestion{}, fmt.Errorf("alternative %d: %w", j, err)
		}
		alts = append(alts, na)
	}
	q.AlternativeQuestions = alts
	return q, nil
}

func (rw *rewriter) alternative(a course.AlternativeQuestion) (course.AlternativeQuestion, error) {
	qid, correct, answers, err := rw.core(a.CorrectAnswerID, a.Answers)
	if err != nil {
		return course.AlternativeQuestion{}, err
	}
	a.QuestionID = qid
	a.CorrectAnswerID = correct
	a.Answers = answers
	a.Options = append([]string{}, a.Options...)
	a.RelatedSkills = stamp(a.RelatedSkills, qid)
	a.RelatedObjectives = stamp(a.RelatedObjectives, qid)
	return a, nil
}

// core rewrites the parts shared by questions and alternatives.
func (rw *rewriter) core(oldCorrect string, answers []course.Answer) (qid, newCorrect string, out []course.Answer, err error) {
	if qid, err = rw.next(); err != nil {
		return "", "", nil, err
	}
	if newCorrect, err = rw.next(); err != nil {
		return "", "", nil, err
	}

	out = make([]course.Answer, len(answers))
	matched := false
	for i, a := range answers {
		a.QuestionID = qid
		switch {
		case !matched && oldCorrect != "" && a.AnswerID == oldCorrect:
			a.AnswerID = newCorrect
			matched = true
		default:
			fresh, err := rw.next()
			if err != nil {
				return "", "", nil, err
			}
			a.AnswerID = fresh
		}
		out[i] = a
	}
	if !matched {
		return "", "", nil, fmt.Errorf("no answer carries correct answer id %q", oldCorrect)
	}
	return qid, newCorrect, out, nil
}

func (rw *rewriter) next() (string, error) {
	id := rw.ids()
	if id == "" {
		return "", fmt.Errorf("id source returned an empty id")
	}
	if _, dup := rw.seen[id]; dup {
		return "", fmt.Errorf("id source returned duplicate id %q", id)
	}
	rw.seen[id] = struct{}{}
	return id, nil
}

func stamp(tags []course.Tag, questionID string) []course.Tag {
	out := course.CloneTags(tags)
	for i := range out {
		out[i].QuestionID = questionID
	}
	return out
}
