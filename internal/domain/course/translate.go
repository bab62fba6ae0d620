package course

// TranslatableContentPart is the non-quiz text of a ContentUnit sent for translation.
// Boundary words are not part of it; they are recomputed from the translated text.
type TranslatableContentPart struct {
	Paragraph string `json:"paragraph"`
	Simplify1 string `json:"simplify1"`
	Simplify2 string `json:"simplify2"`
	Simplify3 string `json:"simplify3"`

	// Tags travel by name only; their ids stay with the source.
	Objectives []TranslatableTag `json:"related_objectives"`
	Skills     []TranslatableTag `json:"related_skills"`
}

type TranslatableTag struct {
	Name string `json:"name"`
}

type TranslatableAnswer struct {
	AnswerID string `json:"answer_id"`
	Text     string `json:"text"`
}

type TranslatableAlternative struct {
	QuestionID string               `json:"question_id"`
	Question   string               `json:"question"`
	Options    []string             `json:"options"`
	Answers    []TranslatableAnswer `json:"answers"`
}

type TranslatableQuestion struct {
	QuestionID   string                    `json:"question_id"`
	Question     string                    `json:"question"`
	Options      []string                  `json:"options"`
	Answers      []TranslatableAnswer      `json:"answers"`
	Alternatives []TranslatableAlternative `json:"alternative_questions"`
}

// TranslatableQuizPart carries the quiz texts keyed by their identifiers.
type TranslatableQuizPart struct {
	Questions []TranslatableQuestion `json:"questions"`
}

func ContentPartOf(u ContentUnit) TranslatableContentPart {
	return TranslatableContentPart{
		Paragraph:  u.Text,
		Simplify1:  u.Simplifications.Basic.Text,
		Simplify2:  u.Simplifications.Detailed.Text,
		Simplify3:  u.Simplifications.Simplest.Text,
		Objectives: translatableTags(u.Objectives),
		Skills:     translatableTags(u.Skills),
	}
}

func translatableTags(in []Tag) []TranslatableTag {
	out := make([]TranslatableTag, 0, len(in))
	for _, t := range in {
		out = append(out, TranslatableTag{Name: t.Name})
	}
	return out
}

func QuizPartOf(quiz []QuizQuestion) TranslatableQuizPart {
	out := TranslatableQuizPart{Questions: make([]TranslatableQuestion, 0, len(quiz))}
	for _, q := range quiz {
		tq := TranslatableQuestion{
			QuestionID:   q.QuestionID,
			Question:     q.QuestionText,
			Options:      append([]string{}, q.Options...),
			Answers:      translatableAnswers(q.Answers),
			Alternatives: make([]TranslatableAlternative, 0, len(q.AlternativeQuestions)),
		}
		for _, a := range q.AlternativeQuestions {
			tq.Alternatives = append(tq.Alternatives, TranslatableAlternative{
				QuestionID: a.QuestionID,
				Question:   a.QuestionText,
				Options:    append([]string{}, a.Options...),
				Answers:    translatableAnswers(a.Answers),
			})
		}
		out.Questions = append(out.Questions, tq)
	}
	return out
}

func translatableAnswers(in []Answer) []TranslatableAnswer {
	out := make([]TranslatableAnswer, 0, len(in))
	for _, a := range in {
		out = append(out, TranslatableAnswer{AnswerID: a.AnswerID, Text: a.Text})
	}
	return out
}
