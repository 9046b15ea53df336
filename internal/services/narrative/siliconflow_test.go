package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"SectorPulse/internal/domain/models"
	domsvc "SectorPulse/internal/domain/service"
)

func summaryFixture() models.SectorSummary {
	return models.SectorSummary{
		Date:    "20240105",
		Sector:  "Banking",
		Symbols: []string{"000001.SZ", "600036.SH"},
		Score:   2305.42,
		Stats:   models.SummaryStats{Count: 2, AvgPctChg: 1.2, NetMFVol: 500},
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("authorization = %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "cmpl-1",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Banks look strong."}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "test-model")
	res, err := c.Analyze(context.Background(), "Banking", summaryFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if res.Sector != "Banking" || res.Analysis != "Banks look strong." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Degraded {
		t.Fatalf("degraded should be false")
	}
	if res.Raw == nil || res.Raw["id"] != "cmpl-1" {
		t.Fatalf("raw payload not kept: %v", res.Raw)
	}
}

func TestAnalyzeMissingChoicesDegradesToEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-2"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "m")
	res, err := c.Analyze(context.Background(), "Banking", summaryFixture())
	if err != nil {
		t.Fatalf("missing choices must not fail the call: %v", err)
	}
	if res.Analysis != "" {
		t.Fatalf("analysis = %q, want empty", res.Analysis)
	}
}

func TestAnalyzeRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "m")
	_, err := c.Analyze(context.Background(), "Banking", summaryFixture())
	var serr *domsvc.ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("want *ServiceError, got %T", err)
	}
	if serr.Kind != domsvc.ErrKindRemote || serr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %+v", serr)
	}
}

func TestAnalyzeUnconfigured(t *testing.T) {
	c := New("http://unused", "", "m")
	_, err := c.Analyze(context.Background(), "Banking", summaryFixture())
	var serr *domsvc.ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("want *ServiceError, got %T", err)
	}
	if serr.Kind != domsvc.ErrKindUnconfigured {
		t.Fatalf("kind = %q", serr.Kind)
	}
}
