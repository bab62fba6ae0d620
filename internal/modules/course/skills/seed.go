package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

const DefaultSeedBatch = 64

// SeedResult summarizes one seeding pass.
type SeedResult struct {
	Created  bool
	Upserted int
	Skipped  int
}

// Seed embeds each skill name and upserts it into the collection, creating the collection
// first when needed. Point ids derive from the skill id, so reseeding is idempotent.
func (l *Lookup) Seed(ctx context.Context, skills []course.Tag, batchSize int) (SeedResult, error) {
	var res SeedResult
	if batchSize <= 0 {
		batchSize = DefaultSeedBatch
	}

	var created bool
	err := l.bounded(ctx, func(ctx context.Context) error {
		var err error
		created, err = l.store.EnsureCollection(ctx)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("ensure collection %s: %w", l.store.Collection(), err)
	}
	res.Created = created

	batch := make([]qdrant.Point, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.bounded(ctx, func(ctx context.Context) error { return l.store.Upsert(ctx, batch) }); err != nil {
			return err
		}
		res.Upserted += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, s := range course.DedupeTags(skills) {
		name := strings.TrimSpace(s.Name)
		id := strings.TrimSpace(s.ID)
		if id == "" {
			id = name
		}
		vec, err := l.embed.Embed(ctx, name)
		if err != nil {
			return res, fmt.Errorf("embed skill %q: %w", name, err)
		}
		if len(vec) == 0 {
			res.Skipped++
			continue
		}
		batch = append(batch, qdrant.Point{
			ID:     id,
			Vector: vec,
			Payload: map[string]any{
				PayloadSkillName: name,
				PayloadSkillID:   id,
			},
		})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := flush(); err != nil {
		return res, err
	}
	l.log.Info("Seeded skills", "collection", l.store.Collection(), "upserted", res.Upserted, "skipped", res.Skipped, "created", res.Created)
	return res, nil
}
