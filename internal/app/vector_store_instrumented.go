package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

type instrumentedVectorStore struct {
	log    *logger.Logger
	inner  qdrant.Store
	tracer trace.Tracer
}

func instrumentVectorStore(log *logger.Logger, inner qdrant.Store) qdrant.Store {
	if inner == nil {
		return nil
	}
	return &instrumentedVectorStore{
		log:    log.With("service", "VectorStore"),
		inner:  inner,
		tracer: otel.Tracer("aicourse/vectorstore"),
	}
}

func (s *instrumentedVectorStore) Collection() string { return s.inner.Collection() }

func (s *instrumentedVectorStore) EnsureCollection(ctx context.Context) (bool, error) {
	ctx, end := s.start(ctx, "ensure_collection")
	created, err := s.inner.EnsureCollection(ctx)
	end(err)
	return created, err
}

func (s *instrumentedVectorStore) VerifyCollection(ctx context.Context) error {
	ctx, end := s.start(ctx, "verify_collection")
	err := s.inner.VerifyCollection(ctx)
	end(err)
	return err
}

func (s *instrumentedVectorStore) Upsert(ctx context.Context, points []qdrant.Point) error {
	ctx, end := s.start(ctx, "upsert", attribute.Int("points", len(points)))
	err := s.inner.Upsert(ctx, points)
	end(err)
	return err
}

func (s *instrumentedVectorStore) Search(ctx context.Context, vector []float32, topK int, filter *qdrant.Filter) ([]qdrant.Match, error) {
	ctx, end := s.start(ctx, "search", attribute.Int("top_k", topK))
	out, err := s.inner.Search(ctx, vector, topK, filter)
	end(err)
	return out, err
}

func (s *instrumentedVectorStore) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	begin := time.Now()
	attrs = append(attrs,
		attribute.String("vectorstore.collection", s.inner.Collection()),
		attribute.String("vectorstore.operation", operation),
	)
	ctx, span := s.tracer.Start(ctx, "vectorstore."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		dur := time.Since(begin)
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.log.Debug("Vector store operation",
			"operation", operation,
			"status", status,
			"duration_ms", dur.Milliseconds(),
		)
	}
}
