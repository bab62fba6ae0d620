package steps

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

// TranslateUnit translates the content and quiz parts of one unit concurrently and
// merges them into a new unit. Identifiers and structure come from the source.
func TranslateUnit(ctx context.Context, deps Deps, unit course.ContentUnit, language string) (course.ContentUnit, error) {
	const op = "translate unit"
	deps, err := deps.check(op)
	if err != nil {
		return course.ContentUnit{}, err
	}
	if strings.TrimSpace(language) == "" {
		return course.ContentUnit{}, apierr.Validationf(op, "target language is required")
	}

	var (
		content course.TranslatableContentPart
		quiz    course.TranslatableQuizPart
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		content, err = gateway.Generate[course.TranslatableContentPart](gctx, deps.Gen, prompts.PromptTranslateContent, prompts.Input{
			PayloadJSON:    mustJSON(course.ContentPartOf(unit)),
			TargetLanguage: language,
		})
		return err
	})
	if len(unit.Quiz) > 0 {
		g.Go(func() error {
			var err error
			quiz, err = gateway.Generate[course.TranslatableQuizPart](gctx, deps.Gen, prompts.PromptTranslateQuiz, prompts.Input{
				PayloadJSON:    mustJSON(course.QuizPartOf(unit.Quiz)),
				TargetLanguage: language,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return course.ContentUnit{}, err
	}

	out := unit
	out.Language = language
	if out.Objectives, err = mergeTags("objectives", unit.Objectives, content.Objectives); err != nil {
		return course.ContentUnit{}, apierr.Backend(op, err)
	}
	if out.Skills, err = mergeTags("skills", unit.Skills, content.Skills); err != nil {
		return course.ContentUnit{}, apierr.Backend(op, err)
	}
	renames := course.TagRenames(unit.Objectives, course.TagNames(out.Objectives))
	for k, v := range course.TagRenames(unit.Skills, course.TagNames(out.Skills)) {
		renames[k] = v
	}
	out.Text = content.Paragraph
	out.StartWord, out.EndWord = course.BoundaryWords(content.Paragraph)
	out.Simplifications.Basic = retext(unit.Simplifications.Basic, content.Simplify1)
	out.Simplifications.Detailed = retext(unit.Simplifications.Detailed, content.Simplify2)
	out.Simplifications.Simplest = retext(unit.Simplifications.Simplest, content.Simplify3)

	out.Quiz, err = mergeQuiz(unit.Quiz, quiz, renames)
	if err != nil {
		return course.ContentUnit{}, apierr.Backend(op, err)
	}
	return out, nil
}

// TranslateUnits translates every unit concurrently. out[i] is the translation of units[i].
func TranslateUnits(ctx context.Context, deps Deps, units []course.ContentUnit, language string) ([]course.ContentUnit, error) {
	deps, err := deps.check("translate units")
	if err != nil {
		return nil, err
	}
	out, err := fanOut(ctx, deps.Config.FanoutLimit, units, func(ctx context.Context, _ int, u course.ContentUnit) (course.ContentUnit, error) {
		return TranslateUnit(ctx, deps, u, language)
	})
	if err != nil {
		return nil, err
	}
	deps.Log.Info("Translated units", "count", len(out), "language", language)
	return out, nil
}

func retext(s course.Simplification, text string) course.Simplification {
	s.Text = text
	s.FirstWord, s.LastWord = course.BoundaryWords(text)
	return s
}

// mergeTags takes translated names by position and keeps every source id.
func mergeTags(kind string, src []course.Tag, tr []course.TranslatableTag) ([]course.Tag, error) {
	if len(tr) != len(src) {
		return nil, fmt.Errorf("translated %d %s, source has %d", len(tr), kind, len(src))
	}
	out := course.CloneTags(src)
	for i := range out {
		out[i].Name = tr[i].Name
	}
	return out, nil
}

// mergeQuiz rebuilds the quiz from translated texts. Question tags named like a unit tag take
// its translated name.
func mergeQuiz(src []course.QuizQuestion, tr course.TranslatableQuizPart, renames map[string]string) ([]course.QuizQuestion, error) {
	if len(tr.Questions) != len(src) {
		return nil, fmt.Errorf("translated quiz has %d questions, source has %d", len(tr.Questions), len(src))
	}
	out := make([]course.QuizQuestion, len(src))
	for i, q := range src {
		t := tr.Questions[i]
		if t.QuestionID != q.QuestionID {
			return nil, fmt.Errorf("question %d: id %q changed to %q", i, q.QuestionID, t.QuestionID)
		}
		nq := q
		var err error
		nq.QuestionText = t.Question
		nq.Options, nq.Answers, nq.CorrectAnswer, err = mergeChoices(q.Options, q.Answers, q.CorrectAnswer, t.Options, t.Answers)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		nq.RelatedSkills = course.RenameTags(q.RelatedSkills, renames)
		nq.RelatedObjectives = course.RenameTags(q.RelatedObjectives, renames)

		if len(t.Alternatives) != len(q.AlternativeQuestions) {
			return nil, fmt.Errorf("question %d: translated %d alternatives, source has %d", i, len(t.Alternatives), len(q.AlternativeQuestions))
		}
		nq.AlternativeQuestions = make([]course.AlternativeQuestion, len(q.AlternativeQuestions))
		for j, a := range q.AlternativeQuestions {
			ta := t.Alternatives[j]
			if ta.QuestionID != a.QuestionID {
				return nil, fmt.Errorf("question %d alternative %d: id %q changed to %q", i, j, a.QuestionID, ta.QuestionID)
			}
			na := a
			na.QuestionText = ta.Question
			na.Options, na.Answers, na.CorrectAnswer, err = mergeChoices(a.Options, a.Answers, a.CorrectAnswer, ta.Options, ta.Answers)
			if err != nil {
				return nil, fmt.Errorf("question %d alternative %d: %w", i, j, err)
			}
			na.RelatedSkills = course.RenameTags(a.RelatedSkills, renames)
			na.RelatedObjectives = course.RenameTags(a.RelatedObjectives, renames)
			nq.AlternativeQuestions[j] = na
		}
		out[i] = nq
	}
	return out, nil
}

// mergeChoices swaps in translated option and answer texts. The correct answer text is
// the translated option at the source's correct position. When the source answers mirror
// the options, answer texts are taken from the translated options so they stay equal.
func mergeChoices(srcOpts []string, srcAnswers []course.Answer, srcCorrect string, trOpts []string, trAnswers []course.TranslatableAnswer) ([]string, []course.Answer, string, error) {
	if len(trOpts) != len(srcOpts) {
		return nil, nil, "", fmt.Errorf("translated %d options, source has %d", len(trOpts), len(srcOpts))
	}
	if len(trAnswers) != len(srcAnswers) {
		return nil, nil, "", fmt.Errorf("translated %d answers, source has %d", len(trAnswers), len(srcAnswers))
	}
	mirrored := answersMirrorOptions(srcAnswers, srcOpts)
	answers := make([]course.Answer, len(srcAnswers))
	for k, a := range srcAnswers {
		if trAnswers[k].AnswerID != a.AnswerID {
			return nil, nil, "", fmt.Errorf("answer %d: id %q changed to %q", k, a.AnswerID, trAnswers[k].AnswerID)
		}
		a.Text = trAnswers[k].Text
		if mirrored {
			a.Text = trOpts[k]
		}
		answers[k] = a
	}
	correct := srcCorrect
	if idx := course.OptionIndex(srcOpts, srcCorrect); idx >= 0 {
		correct = trOpts[idx]
	}
	return append([]string{}, trOpts...), answers, correct, nil
}

func answersMirrorOptions(answers []course.Answer, options []string) bool {
	if len(answers) != len(options) {
		return false
	}
	for k, a := range answers {
		if a.Text != options[k] {
			return false
		}
	}
	return true
}

// TranslateCourseMeta translates the course name and description as plain text and each
// chapter with one structured call. Chapters run concurrently and keep their order.
func TranslateCourseMeta(ctx context.Context, deps Deps, w course.CourseWrapper, language string) (course.CourseWrapper, error) {
	const op = "translate course meta"
	deps, err := deps.check(op)
	if err != nil {
		return course.CourseWrapper{}, err
	}
	if strings.TrimSpace(language) == "" {
		return course.CourseWrapper{}, apierr.Validationf(op, "target language is required")
	}
	src := w.Course
	out := course.Course{ID: src.ID}
	system := prompts.TranslateTextSystem(language)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Name, err = translateText(gctx, deps, system, src.Name)
		return err
	})
	g.Go(func() error {
		var err error
		out.Description, err = translateText(gctx, deps, system, src.Description)
		return err
	})
	g.Go(func() error {
		var err error
		out.Chapters, err = fanOut(gctx, deps.Config.FanoutLimit, src.Chapters, func(ctx context.Context, i int, ch course.Chapter) (course.Chapter, error) {
			return translateChapter(ctx, deps, ch, language)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return course.CourseWrapper{}, err
	}
	if out.Chapters == nil {
		out.Chapters = []course.Chapter{}
	}
	return course.CourseWrapper{Course: out}, nil
}

func translateText(ctx context.Context, deps Deps, system, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	return deps.Gen.GenerateText(ctx, system, text)
}

func translateChapter(ctx context.Context, deps Deps, src course.Chapter, language string) (course.Chapter, error) {
	const op = "translate chapter"
	tr, err := gateway.Generate[course.Chapter](ctx, deps.Gen, prompts.PromptTranslateChapterMD, prompts.Input{
		PayloadJSON:    mustJSON(src),
		TargetLanguage: language,
	})
	if err != nil {
		return course.Chapter{}, err
	}
	if len(tr.Videos) != len(src.Videos) {
		return course.Chapter{}, apierr.Backendf(op, "chapter %s: translated %d videos, source has %d", src.ID, len(tr.Videos), len(src.Videos))
	}
	out := course.Chapter{
		ID:          src.ID,
		Name:        tr.Name,
		Description: keepNull(src.Description, tr.Description),
		Videos:      make([]course.Video, len(src.Videos)),
	}
	for i, v := range src.Videos {
		out.Videos[i] = course.Video{
			ID:          v.ID,
			Name:        tr.Videos[i].Name,
			Description: keepNull(v.Description, tr.Videos[i].Description),
		}
	}
	return out, nil
}

// keepNull keeps absent descriptions absent.
func keepNull(src, tr *string) *string {
	if src == nil {
		return nil
	}
	if tr == nil {
		s := *src
		return &s
	}
	s := *tr
	return &s
}
