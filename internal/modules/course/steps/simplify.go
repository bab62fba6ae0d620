package steps

import (
	"context"
	"fmt"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

type simplifyReply struct {
	Simplify1 string `json:"simplify1"`
	Simplify2 string `json:"simplify2"`
	Simplify3 string `json:"simplify3"`
}

// Simplify rewrites one paragraph at three levels.
func Simplify(ctx context.Context, deps Deps, p course.Paragraph) (course.SimplificationTriple, error) {
	const op = "simplify"
	deps, err := deps.check(op)
	if err != nil {
		return course.SimplificationTriple{}, err
	}
	lang := p.Language
	if lang == "" {
		lang = course.DefaultLanguage
	}

	reply, err := gateway.Generate[simplifyReply](ctx, deps.Gen, prompts.PromptSimplifyParagraph, prompts.Input{
		ParagraphText: p.Text,
		Language:      lang,
	})
	if err != nil {
		return course.SimplificationTriple{}, err
	}
	if reply.Simplify1 == "" || reply.Simplify2 == "" || reply.Simplify3 == "" {
		return course.SimplificationTriple{}, apierr.Backendf(op, "empty simplification for paragraph %s", p.ID)
	}

	triple := course.SimplificationTriple{
		Basic:    deps.newSimplification(reply.Simplify1),
		Detailed: deps.newSimplification(reply.Simplify2),
		Simplest: deps.newSimplification(reply.Simplify3),
	}
	if v := GrowthViolations(p.Text, triple); len(v) > 0 {
		deps.Log.Warn("Simplification growth not monotonic", "paragraph_id", p.ID, "violations", v)
	}
	return triple, nil
}

// SimplifyAll simplifies every paragraph concurrently. units[i] belongs to paragraphs[i].
func SimplifyAll(ctx context.Context, deps Deps, paragraphs []course.Paragraph) ([]course.ContentUnit, error) {
	deps, err := deps.check("simplify all")
	if err != nil {
		return nil, err
	}
	units, err := fanOut(ctx, deps.Config.FanoutLimit, paragraphs, func(ctx context.Context, _ int, p course.Paragraph) (course.ContentUnit, error) {
		triple, err := Simplify(ctx, deps, p)
		if err != nil {
			return course.ContentUnit{}, err
		}
		return course.ContentUnit{Paragraph: p, Simplifications: triple, Quiz: []course.QuizQuestion{}}, nil
	})
	if err != nil {
		return nil, err
	}
	deps.Log.Info("Simplified paragraphs", "count", len(units))
	return units, nil
}

func (d Deps) newSimplification(text string) course.Simplification {
	first, last := course.BoundaryWords(text)
	return course.Simplification{ID: d.NewID(), Text: text, FirstWord: first, LastWord: last}
}

// GrowthViolations lists where a triple fails paragraph < basic < detailed < simplest
// by word count. Empty means the growth contract holds.
func GrowthViolations(paragraph string, t course.SimplificationTriple) []string {
	steps := []struct {
		name string
		text string
	}{
		{"paragraph", paragraph},
		{"simplify1", t.Basic.Text},
		{"simplify2", t.Detailed.Text},
		{"simplify3", t.Simplest.Text},
	}
	var out []string
	for i := 1; i < len(steps); i++ {
		prev, cur := course.WordCount(steps[i-1].text), course.WordCount(steps[i].text)
		if cur <= prev {
			out = append(out, fmt.Sprintf("%s (%d words) not longer than %s (%d words)", steps[i].name, cur, steps[i-1].name, prev))
		}
	}
	return out
}
