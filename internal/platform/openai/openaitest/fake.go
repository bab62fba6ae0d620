// Package openaitest provides an in-memory openai.Client for tests.
package openaitest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// JSONFunc answers one structured call. user is the rendered user prompt.
type JSONFunc func(ctx context.Context, user string) ([]byte, error)

// Fake dispatches structured calls by schema name. It is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	json  map[string]JSONFunc
	calls map[string]int

	TextFn  func(ctx context.Context, system, user string) (string, error)
	EmbedFn func(ctx context.Context, inputs []string) ([][]float32, error)

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func New() *Fake {
	return &Fake{json: map[string]JSONFunc{}, calls: map[string]int{}}
}

// OnJSON registers the handler for a schema name.
func (f *Fake) OnJSON(schemaName string, fn JSONFunc) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.json[schemaName] = fn
	return f
}

// Calls returns how many structured calls were made for schemaName.
func (f *Fake) Calls(schemaName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[schemaName]
}

// MaxInFlight is the highest number of concurrent calls observed.
func (f *Fake) MaxInFlight() int64 { return f.maxInFlight.Load() }

func (f *Fake) enter() func() {
	n := f.inFlight.Add(1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *Fake) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) ([]byte, error) {
	defer f.enter()()
	f.mu.Lock()
	fn := f.json[schemaName]
	f.calls[schemaName]++
	f.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("openaitest: no handler for schema %q", schemaName)
	}
	return fn(ctx, user)
}

func (f *Fake) GenerateText(ctx context.Context, system, user string) (string, error) {
	defer f.enter()()
	if f.TextFn == nil {
		return user, nil
	}
	return f.TextFn(ctx, system, user)
}

func (f *Fake) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	defer f.enter()()
	if f.EmbedFn == nil {
		out := make([][]float32, len(inputs))
		for i := range inputs {
			out[i] = []float32{float32(len(inputs[i])), 1}
		}
		return out, nil
	}
	return f.EmbedFn(ctx, inputs)
}

func (f *Fake) Model() string { return "fake-model" }
