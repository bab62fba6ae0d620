package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai/openaitest"
)

type simplifyReply struct {
	Simplify1 string `json:"simplify1"`
	Simplify2 string `json:"simplify2"`
	Simplify3 string `json:"simplify3"`
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memCache) Close() error { return nil }

func simplifyInput() prompts.Input {
	return prompts.Input{ParagraphText: "Water boils at 100 degrees.", Language: "English"}
}

func TestGenerateDecodesValidReply(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return []byte(`{"simplify1":"a","simplify2":"bb","simplify3":"ccc"}`), nil
	})
	gw := New(logger.Nop(), fake, nil, 2)

	out, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.NoError(t, err)
	assert.Equal(t, simplifyReply{Simplify1: "a", Simplify2: "bb", Simplify3: "ccc"}, out)
}

func TestGenerateRejectsSchemaViolation(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return []byte(`{"simplify1":"a","simplify2":"bb"}`), nil
	})
	gw := New(logger.Nop(), fake, nil, 2)

	_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.Error(t, err)
	assert.Equal(t, apierr.KindBackend, apierr.KindOf(err))
}

func TestGenerateRejectsMalformedJSON(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return []byte(`{"simplify1":`), nil
	})
	gw := New(logger.Nop(), fake, nil, 2)

	_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.Error(t, err)
	assert.Equal(t, apierr.KindBackend, apierr.KindOf(err))
}

func TestGenerateClassifiesDeadlineAsTimeout(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(ctx context.Context, _ string) ([]byte, error) {
		return nil, fmt.Errorf("call: %w", context.DeadlineExceeded)
	})
	gw := New(logger.Nop(), fake, nil, 2)

	_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.Error(t, err)
	assert.Equal(t, apierr.KindTimeout, apierr.KindOf(err))
}

func TestGenerateDoesNotRetry(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return nil, errors.New("status 500")
	})
	gw := New(logger.Nop(), fake, nil, 2)

	_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.Error(t, err)
	assert.Equal(t, 1, fake.Calls("paragraph_simplification"))
}

func TestGenerateInvalidInputIsValidationError(t *testing.T) {
	gw := New(logger.Nop(), openaitest.New(), nil, 2)
	_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, prompts.Input{})
	require.Error(t, err)
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
}

func TestGenerateUsesCache(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return []byte(`{"simplify1":"a","simplify2":"bb","simplify3":"ccc"}`), nil
	})
	cache := newMemCache()
	gw := New(logger.Nop(), fake, cache, 2)

	for i := 0; i < 3; i++ {
		_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fake.Calls("paragraph_simplification"))
	assert.Equal(t, 1, cache.sets)
}

func TestGenerateIgnoresInvalidCachedEntry(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		return []byte(`{"simplify1":"a","simplify2":"bb","simplify3":"ccc"}`), nil
	})
	cache := newMemCache()
	gw := New(logger.Nop(), fake, cache, 2)

	p, err := prompts.Build(prompts.PromptSimplifyParagraph, simplifyInput())
	require.NoError(t, err)
	cache.data[gw.cacheKey(p)] = []byte(`{"junk":true}`)

	out, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, simplifyInput())
	require.NoError(t, err)
	assert.Equal(t, "ccc", out.Simplify3)
	assert.Equal(t, 1, fake.Calls("paragraph_simplification"))
}

func TestConcurrencyIsBounded(t *testing.T) {
	fake := openaitest.New().OnJSON("paragraph_simplification", func(context.Context, string) ([]byte, error) {
		time.Sleep(20 * time.Millisecond)
		return []byte(`{"simplify1":"a","simplify2":"bb","simplify3":"ccc"}`), nil
	})
	gw := New(logger.Nop(), fake, nil, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := simplifyInput()
			in.ParagraphText = fmt.Sprintf("paragraph %d", i)
			_, err := Generate[simplifyReply](context.Background(), gw, prompts.PromptSimplifyParagraph, in)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, fake.MaxInFlight(), int64(2))
	assert.Equal(t, 8, fake.Calls("paragraph_simplification"))
}

func TestGenerateTextAndEmbed(t *testing.T) {
	fake := openaitest.New()
	fake.TextFn = func(_ context.Context, system, user string) (string, error) {
		return "[" + user + "]", nil
	}
	gw := New(logger.Nop(), fake, nil, 0)

	out, err := gw.GenerateText(context.Background(), prompts.TranslateTextSystem("French"), "Physics")
	require.NoError(t, err)
	assert.Equal(t, "[Physics]", out)

	vec, err := gw.Embed(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, vec)
}

func TestEmbedCountMismatch(t *testing.T) {
	fake := openaitest.New()
	fake.EmbedFn = func(context.Context, []string) ([][]float32, error) { return nil, nil }
	gw := New(logger.Nop(), fake, nil, 1)

	_, err := gw.Embed(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, apierr.KindBackend, apierr.KindOf(err))
}

func TestBoundedHoldsAPoolSlot(t *testing.T) {
	gw := New(logger.Nop(), openaitest.New(), nil, 1)

	err := gw.Bounded(context.Background(), func(context.Context) error {
		assert.False(t, gw.sem.TryAcquire(1))
		return errors.New("store down")
	})
	require.EqualError(t, err, "store down")
	require.True(t, gw.sem.TryAcquire(1))
	gw.sem.Release(1)
}
