package steps

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func newUUID() string { return uuid.NewString() }

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// fanOut runs fn over in with at most limit in flight. out[i] always corresponds to
// in[i]. The first failure cancels the rest and no partial slice is returned.
func fanOut[In, Out any](ctx context.Context, limit int, in []In, fn func(ctx context.Context, i int, v In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range in {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, i, in[i])
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
