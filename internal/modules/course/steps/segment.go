package steps

import (
	"context"
	"strings"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

type segmentReply struct {
	Paragraphs []segmentedParagraph `json:"paragraphs"`
}

type segmentedParagraph struct {
	Paragraph  string       `json:"paragraph"`
	Level      course.Level `json:"paragraph_level"`
	Objectives []course.Tag `json:"related_objectives"`
	Skills     []course.Tag `json:"related_skills"`
}

// Segment splits a transcript into paragraphs in one backend call. A transcript within
// the word limit comes back verbatim as a single paragraph without calling the backend.
func Segment(ctx context.Context, deps Deps, req course.ProcessVideoRequest) ([]course.Paragraph, error) {
	const op = "segment"
	deps, err := deps.check(op)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Video) == "" {
		return nil, apierr.Validationf(op, "video transcript is required")
	}
	lang := req.LanguageOrDefault()
	maxWords := deps.Config.MaxWords

	var paragraphs []course.Paragraph
	if course.WordCount(req.Video) <= maxWords {
		paragraphs = []course.Paragraph{
			deps.newParagraph(req.Video, course.SnapLevel(course.Level{}), req.Objectives, req.Skills, lang),
		}
		deps.Log.Debug("Transcript under word limit, passing through", "words", course.WordCount(req.Video), "max_words", maxWords)
	} else {
		reply, err := gateway.Generate[segmentReply](ctx, deps.Gen, prompts.PromptSegmentParagraphs, prompts.Input{
			Transcript:     req.Video,
			MaxWords:       maxWords,
			LevelsJSON:     mustJSON(course.Levels()),
			ObjectivesJSON: mustJSON(course.TagNames(req.Objectives)),
			SkillsJSON:     mustJSON(course.TagNames(req.Skills)),
		})
		if err != nil {
			return nil, err
		}
		if len(reply.Paragraphs) == 0 {
			return nil, apierr.Backendf(op, "backend returned no paragraphs")
		}
		paragraphs = make([]course.Paragraph, 0, len(reply.Paragraphs))
		for i, sp := range reply.Paragraphs {
			text := strings.TrimSpace(sp.Paragraph)
			if text == "" {
				return nil, apierr.Backendf(op, "paragraph %d is empty", i)
			}
			if n := course.WordCount(text); n > maxWords {
				return nil, apierr.Backendf(op, "paragraph %d has %d words, limit is %d", i, n, maxWords)
			}
			paragraphs = append(paragraphs, deps.newParagraph(
				text,
				course.SnapLevel(sp.Level),
				course.SubsetOf(sp.Objectives, req.Objectives),
				course.SubsetOf(sp.Skills, req.Skills),
				lang,
			))
		}
	}

	if len(req.Skills) == 0 && deps.Skills != nil {
		if err := deps.attachNearestSkills(ctx, paragraphs); err != nil {
			return nil, err
		}
	}
	deps.Log.Info("Segmented transcript", "paragraphs", len(paragraphs), "language", lang)
	return paragraphs, nil
}

func (d Deps) newParagraph(text string, level course.Level, objectives, skills []course.Tag, lang string) course.Paragraph {
	first, last := course.BoundaryWords(text)
	return course.Paragraph{
		ID:         d.NewID(),
		Text:       text,
		Level:      level,
		Objectives: course.DedupeTags(course.CloneTags(objectives)),
		Skills:     course.DedupeTags(course.CloneTags(skills)),
		Language:   lang,
		StartWord:  first,
		EndWord:    last,
	}
}

// attachNearestSkills tags each paragraph with the catalog skill closest to its text.
func (d Deps) attachNearestSkills(ctx context.Context, paragraphs []course.Paragraph) error {
	tags, err := fanOut(ctx, d.Config.FanoutLimit, paragraphs, func(ctx context.Context, _ int, p course.Paragraph) (*course.Tag, error) {
		return d.Skills.NearestSkillForText(ctx, p.Text)
	})
	if err != nil {
		return err
	}
	for i, t := range tags {
		if t != nil {
			paragraphs[i].Skills = []course.Tag{*t}
		}
	}
	return nil
}
