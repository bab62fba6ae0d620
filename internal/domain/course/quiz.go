package course

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
)

func (t QuestionType) Valid() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

const (
	MinQuestionLevel = 1
	MaxQuestionLevel = 6
)

type Answer struct {
	AnswerID   string `json:"answer_id"`
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

type QuizQuestion struct {
	QuestionID           string                `json:"question_id"`
	ParagraphID          string                `json:"paragraph_id,omitempty"`
	QuestionText         string                `json:"question"`
	Type                 QuestionType          `json:"question_type"`
	Level                int                   `json:"question_level"`
	PostAssessment       bool                  `json:"post_assessment"`
	Options              []string              `json:"options"`
	CorrectAnswer        string                `json:"correct_answer"`
	CorrectAnswerID      string                `json:"correct_answer_id"`
	Answers              []Answer              `json:"answers"`
	RelatedSkills        []Tag                 `json:"related_skills"`
	RelatedObjectives    []Tag                 `json:"related_objectives"`
	AlternativeQuestions []AlternativeQuestion `json:"alternative_questions"`
}

// AlternativeQuestion is an independently gradable variant of its parent question.
// It owns its own answers and never nests further alternatives.
type AlternativeQuestion struct {
	QuestionID        string       `json:"question_id"`
	QuestionText      string       `json:"question"`
	Type              QuestionType `json:"question_type"`
	Level             int          `json:"question_level"`
	PostAssessment    bool         `json:"post_assessment"`
	Options           []string     `json:"options"`
	CorrectAnswer     string       `json:"correct_answer"`
	CorrectAnswerID   string       `json:"correct_answer_id"`
	Answers           []Answer     `json:"answers"`
	RelatedSkills     []Tag        `json:"related_skills"`
	RelatedObjectives []Tag        `json:"related_objectives"`
}

// QuizSet is the quiz-only response shape.
type QuizSet struct {
	Quiz []QuizQuestion `json:"quiz"`
}

// ContainsOption reports whether opt is literally one of options.
func ContainsOption(options []string, opt string) bool {
	return OptionIndex(options, opt) >= 0
}

func OptionIndex(options []string, opt string) int {
	for i, o := range options {
		if o == opt {
			return i
		}
	}
	return -1
}
