package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/yungbote/aicourse-backend/internal/clients/redis"
	"github.com/yungbote/aicourse-backend/internal/modules/course/prompts"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai"
)

const DefaultMaxConcurrency = 5

// Gateway is the single path to the generation backend. It bounds in-flight calls
// process-wide and turns every structured reply into a validated typed record or an error.
type Gateway struct {
	log    *logger.Logger
	client openai.Client
	cache  redis.ResponseCache
	sem    *semaphore.Weighted
	tracer trace.Tracer

	schemaMu sync.Mutex
	schemas  map[string]*gojsonschema.Schema
}

// New builds a gateway. cache may be nil.
func New(log *logger.Logger, client openai.Client, cache redis.ResponseCache, maxConcurrency int) *Gateway {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Gateway{
		log:     log.With("service", "GenerationGateway"),
		client:  client,
		cache:   cache,
		sem:     semaphore.NewWeighted(int64(maxConcurrency)),
		tracer:  otel.Tracer("aicourse/gateway"),
		schemas: map[string]*gojsonschema.Schema{},
	}
}

// Generate renders the named prompt, calls the backend in structured mode and decodes
// the validated reply into T. There is no retry.
func Generate[T any](ctx context.Context, gw *Gateway, name prompts.PromptName, in prompts.Input) (T, error) {
	var zero T
	op := "generate " + string(name)

	p, err := prompts.Build(name, in)
	if err != nil {
		return zero, apierr.Validation(op, err)
	}

	ctx, span := gw.tracer.Start(ctx, "gateway.generate", trace.WithAttributes(
		attribute.String("prompt.name", p.Name),
		attribute.Int("prompt.version", p.Version),
		attribute.String("llm.model", gw.client.Model()),
	))
	defer span.End()

	raw, err := gw.structured(ctx, op, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}

	var out T
	if err := decodeStrict(raw, &out); err != nil {
		err = apierr.Backend(op, fmt.Errorf("decode %s: %w", p.SchemaName, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}
	return out, nil
}

// structured returns schema-valid JSON, from the cache when possible.
func (gw *Gateway) structured(ctx context.Context, op string, p prompts.Prompt) ([]byte, error) {
	key := gw.cacheKey(p)
	if raw, ok := gw.cacheGet(ctx, key); ok {
		if err := gw.validate(p, raw); err == nil {
			trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("cache.hit", true))
			return raw, nil
		}
		gw.log.Warn("Ignoring cached generation that no longer validates", "prompt", p.Name)
	}

	if err := gw.sem.Acquire(ctx, 1); err != nil {
		return nil, apierr.Classify(op, err)
	}
	start := time.Now()
	raw, err := gw.client.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	gw.sem.Release(1)
	if err != nil {
		gw.log.Warn("Generation call failed",
			"prompt", p.Name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, apierr.Classify(op, err)
	}
	gw.log.Debug("Generation call done", "prompt", p.Name, "duration_ms", time.Since(start).Milliseconds())

	if err := gw.validate(p, raw); err != nil {
		return nil, apierr.Backend(op, err)
	}
	gw.cacheSet(ctx, key, raw)
	return raw, nil
}

// GenerateText is the plain-text mode used for single-string translation.
func (gw *Gateway) GenerateText(ctx context.Context, system, user string) (string, error) {
	const op = "generate text"
	ctx, span := gw.tracer.Start(ctx, "gateway.generate_text")
	defer span.End()

	if err := gw.sem.Acquire(ctx, 1); err != nil {
		return "", apierr.Classify(op, err)
	}
	defer gw.sem.Release(1)

	out, err := gw.client.GenerateText(ctx, system, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", apierr.Classify(op, err)
	}
	return out, nil
}

// Embed returns the embedding of one text.
func (gw *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "embed"
	ctx, span := gw.tracer.Start(ctx, "gateway.embed")
	defer span.End()

	if err := gw.sem.Acquire(ctx, 1); err != nil {
		return nil, apierr.Classify(op, err)
	}
	defer gw.sem.Release(1)

	vecs, err := gw.client.Embed(ctx, []string{text})
	if err != nil {
		span.RecordError(err)
		return nil, apierr.Classify(op, err)
	}
	if len(vecs) != 1 {
		return nil, apierr.Backendf(op, "expected 1 embedding, got %d", len(vecs))
	}
	return vecs[0], nil
}

// Bounded runs fn while holding one slot of the call pool shared with generation.
func (gw *Gateway) Bounded(ctx context.Context, fn func(context.Context) error) error {
	if err := gw.sem.Acquire(ctx, 1); err != nil {
		return apierr.Classify("bounded call", err)
	}
	defer gw.sem.Release(1)
	return fn(ctx)
}

func (gw *Gateway) validate(p prompts.Prompt, raw []byte) error {
	schema, err := gw.compiled(p)
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%s: reply is not valid JSON: %w", p.SchemaName, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s: reply violates schema: %s", p.SchemaName, strings.Join(msgs, "; "))
}

func (gw *Gateway) compiled(p prompts.Prompt) (*gojsonschema.Schema, error) {
	key := fmt.Sprintf("%s@%d", p.SchemaName, p.Version)
	gw.schemaMu.Lock()
	defer gw.schemaMu.Unlock()
	if s, ok := gw.schemas[key]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(p.Schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", p.SchemaName, err)
	}
	gw.schemas[key] = s
	return s, nil
}

func (gw *Gateway) cacheKey(p prompts.Prompt) string {
	h := sha256.Sum256([]byte(gw.client.Model() + "|" + p.Fingerprint()))
	return hex.EncodeToString(h[:])
}

func (gw *Gateway) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if gw.cache == nil {
		return nil, false
	}
	raw, ok, err := gw.cache.Get(ctx, key)
	if err != nil {
		gw.log.Warn("Generation cache read failed", "error", err)
		return nil, false
	}
	return raw, ok
}

func (gw *Gateway) cacheSet(ctx context.Context, key string, raw []byte) {
	if gw.cache == nil {
		return
	}
	if err := gw.cache.Set(ctx, key, raw); err != nil {
		gw.log.Warn("Generation cache write failed", "error", err)
	}
}

func decodeStrict(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
