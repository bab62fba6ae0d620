package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

func TestStoreUpsertRequestShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	s := newTestStore(t, "aic", func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.String()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		return okResponse(t, map[string]any{"status": "completed"}), nil
	})

	err := s.Upsert(context.Background(), []Point{{
		ID:      "skill-1",
		Vector:  []float32{0.1, 0.2, 0.3},
		Payload: map[string]any{"skill_en": "Fractions", "skill_id": "skill-1"},
	}})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if gotPath != "http://qdrant.local/collections/skills_en/points?wait=true" {
		t.Fatalf("path: got=%s", gotPath)
	}
	points, _ := gotBody["points"].([]any)
	if len(points) != 1 {
		t.Fatalf("points: want=1 got=%d", len(points))
	}
	p := points[0].(map[string]any)
	wantID := uuid.NewSHA1(pointIDNamespaceUUID, []byte("aic|skill-1")).String()
	if p["id"] != wantID {
		t.Fatalf("point id: want=%s got=%v", wantID, p["id"])
	}
	payload := p["payload"].(map[string]any)
	if payload[payloadNamespaceKey] != "aic" || payload[payloadPointKey] != "skill-1" || payload["skill_en"] != "Fractions" {
		t.Fatalf("payload: got=%v", payload)
	}
}

func TestStoreUpsertDimensionMismatch(t *testing.T) {
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")
		return nil, nil
	})
	err := s.Upsert(context.Background(), []Point{{ID: "x", Vector: []float32{1}}})
	var opErrTyped *OperationError
	if !errors.As(err, &opErrTyped) || opErrTyped.Code != OperationErrorValidation {
		t.Fatalf("want validation error got=%v", err)
	}
}

func TestStoreSearchReturnsPayloadsSortedByScore(t *testing.T) {
	var gotBody map[string]any
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/collections/skills_en/points/search" {
			t.Fatalf("path: got=%s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		return okResponse(t, []map[string]any{
			{"id": 7, "score": 0.4, "payload": map[string]any{"skill_en": "Decimals", "skill_id": "s-7"}},
			{"id": "a0c5", "score": 0.9, "payload": map[string]any{"skill_en": "Fractions", "skill_id": "s-1", payloadPointKey: "s-1"}},
		}), nil
	})

	matches, err := s.Search(context.Background(), []float32{1, 0, 0}, 2, &Filter{Must: []Condition{MatchAny("skill_id", "s-1", "s-7")}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches: want=2 got=%d", len(matches))
	}
	if matches[0].ID != "s-1" || matches[0].Payload["skill_en"] != "Fractions" {
		t.Fatalf("first match: got=%+v", matches[0])
	}
	if _, leaked := matches[0].Payload[payloadPointKey]; leaked {
		t.Fatalf("internal payload key leaked")
	}
	if matches[1].ID != "7" {
		t.Fatalf("numeric point id: want=7 got=%s", matches[1].ID)
	}
	if gotBody["limit"] != float64(2) || gotBody["with_payload"] != true {
		t.Fatalf("request: got=%v", gotBody)
	}
	filter, _ := gotBody["filter"].(map[string]any)
	if must, _ := filter["must"].([]any); len(must) != 1 {
		t.Fatalf("filter without namespace should carry one condition: got=%v", filter)
	}
}

func TestStoreSearchNoFilterWithoutNamespace(t *testing.T) {
	var gotBody map[string]any
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		return okResponse(t, []any{}), nil
	})
	if _, err := s.Search(context.Background(), []float32{1, 0, 0}, 1, nil); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, ok := gotBody["filter"]; ok {
		t.Fatalf("filter should be omitted: got=%v", gotBody["filter"])
	}
}

func TestStoreEnsureCollectionCreatesOnNotFound(t *testing.T) {
	var calls []string
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		calls = append(calls, r.Method)
		if r.Method == http.MethodGet {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Header:     make(http.Header),
				Body:       io.NopCloser(bytes.NewReader([]byte(`{"status":{"error":"Not found"}}`))),
			}, nil
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		vectors := body["vectors"].(map[string]any)
		if vectors["size"] != float64(3) || vectors["distance"] != "Cosine" {
			t.Fatalf("create body: got=%v", body)
		}
		return okResponse(t, true), nil
	})

	created, err := s.EnsureCollection(context.Background())
	if err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}
	if !created {
		t.Fatalf("want created=true")
	}
	if len(calls) != 2 || calls[1] != http.MethodPut {
		t.Fatalf("calls: got=%v", calls)
	}
}

func TestStoreVerifyCollectionSizeMismatch(t *testing.T) {
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		return okResponse(t, map[string]any{
			"config": map[string]any{"params": map[string]any{"vectors": map[string]any{"size": 1536, "distance": "Cosine"}}},
		}), nil
	})
	err := s.VerifyCollection(context.Background())
	var opErrTyped *OperationError
	if !errors.As(err, &opErrTyped) || opErrTyped.Code != OperationErrorValidation {
		t.Fatalf("want validation error got=%v", err)
	}
}

func TestStoreEnvelopeStatusError(t *testing.T) {
	s := newTestStore(t, "", func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewReader([]byte(`{"result":null,"status":{"error":"wrong input"}}`))),
		}, nil
	})
	_, err := s.Search(context.Background(), []float32{1, 0, 0}, 1, nil)
	var opErrTyped *OperationError
	if !errors.As(err, &opErrTyped) || opErrTyped.Code != OperationErrorQueryFailed || opErrTyped.Message != "wrong input" {
		t.Fatalf("want query_failed with status message got=%v", err)
	}
}

func TestClassifyHTTPCallErrorTimeout(t *testing.T) {
	err := classifyHTTPCallError("search", "timeout", context.DeadlineExceeded)
	var opErrTyped *OperationError
	if !errors.As(err, &opErrTyped) || opErrTyped.Code != OperationErrorTimeout {
		t.Fatalf("want timeout code got=%v", err)
	}
}

func TestClassifyHTTPCallErrorTransport(t *testing.T) {
	err := classifyHTTPCallError("search", "transport", fmt.Errorf("boom"))
	var opErrTyped *OperationError
	if !errors.As(err, &opErrTyped) || opErrTyped.Code != OperationErrorTransportFailed {
		t.Fatalf("want transport code got=%v", err)
	}
}

func newTestStore(t *testing.T, ns string, roundTrip func(*http.Request) (*http.Response, error)) *store {
	t.Helper()
	return &store{
		log:      logger.Nop(),
		cfg:      Config{Collection: "skills_en", VectorDim: 3, Distance: DefaultDistance},
		baseURL:  "http://qdrant.local",
		ns:       ns,
		distance: "cosine",
		http:     &http.Client{Transport: roundTripFunc(roundTrip)},
	}
}

func okResponse(t *testing.T, result any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"result": result,
		"status": "ok",
		"time":   0.001,
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
