package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

const (
	PayloadSkillName = "skill_en"
	PayloadSkillID   = "skill_id"
)

// Embedder turns text into a vector of the collection's dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Limiter bounds store calls. The generation gateway satisfies it.
type Limiter interface {
	Bounded(ctx context.Context, fn func(context.Context) error) error
}

// Lookup finds the catalog skill nearest to a vector or a piece of text.
type Lookup struct {
	log   *logger.Logger
	store qdrant.Store
	embed Embedder
	limit Limiter
}

// NewLookup builds a lookup. A nil limit leaves store calls unbounded.
func NewLookup(log *logger.Logger, store qdrant.Store, embed Embedder, limit Limiter) *Lookup {
	return &Lookup{
		log:   log.With("service", "SkillLookup"),
		store: store,
		embed: embed,
		limit: limit,
	}
}

func (l *Lookup) bounded(ctx context.Context, fn func(context.Context) error) error {
	if l.limit == nil {
		return fn(ctx)
	}
	return l.limit.Bounded(ctx, fn)
}

// NearestSkill returns the single closest skill, or nil when the collection has no match.
func (l *Lookup) NearestSkill(ctx context.Context, vector []float32) (*course.Tag, error) {
	const op = "nearest skill"
	var matches []qdrant.Match
	err := l.bounded(ctx, func(ctx context.Context) error {
		var err error
		matches, err = l.store.Search(ctx, vector, 1, nil)
		return err
	})
	if err != nil {
		return nil, apierr.Store(op, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	tag := tagFromPayload(matches[0].Payload)
	if tag.Name == "" {
		l.log.Warn("Skill match without a name", "point_id", matches[0].ID, "collection", l.store.Collection())
		return nil, nil
	}
	return &tag, nil
}

// NearestSkillForText embeds text and looks up its nearest skill.
func (l *Lookup) NearestSkillForText(ctx context.Context, text string) (*course.Tag, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	vec, err := l.embed.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return l.NearestSkill(ctx, vec)
}

func tagFromPayload(p map[string]any) course.Tag {
	return course.Tag{
		Name: strings.TrimSpace(payloadString(p[PayloadSkillName])),
		ID:   strings.TrimSpace(payloadString(p[PayloadSkillID])),
	}
}

func payloadString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// qdrant returns JSON numbers; integral ids should not render as 1e+06
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
