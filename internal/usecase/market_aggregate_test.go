package usecase

import (
	"context"
	"testing"
	"time"

	"SectorPulse/pkg/cache"
)

func TestAggregateConcatenatesInSymbolOrder(t *testing.T) {
	md := marketDataFixture()
	agg := NewMarketAggregator(md)

	daily, moneyFlow, margin, err := agg.Aggregate(context.Background(),
		[]string{"000001.SZ", "600036.SH"}, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily.Rows) != 2 {
		t.Fatalf("daily rows = %d, want 2", len(daily.Rows))
	}
	if daily.Rows[0].Symbol != "000001.SZ" || daily.Rows[1].Symbol != "600036.SH" {
		t.Fatalf("symbol order broken: %v, %v", daily.Rows[0].Symbol, daily.Rows[1].Symbol)
	}
	if len(moneyFlow.Rows) != 2 {
		t.Fatalf("moneyflow rows = %d, want 2", len(moneyFlow.Rows))
	}
	// only 000001.SZ has margin rows; 600036.SH contributes nothing
	if len(margin.Rows) != 1 {
		t.Fatalf("margin rows = %d, want 1", len(margin.Rows))
	}
}

func TestAggregateNoRowsIsNotAnError(t *testing.T) {
	md := &fakeMarketData{failDaily: map[string]error{}}
	agg := NewMarketAggregator(md)

	daily, moneyFlow, margin, err := agg.Aggregate(context.Background(),
		[]string{"000001.SZ"}, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !daily.Empty() || !moneyFlow.Empty() || !margin.Empty() {
		t.Fatalf("expected all tables empty")
	}
}

func TestAggregateProviderErrorPropagates(t *testing.T) {
	md := marketDataFixture()
	md.failDaily["000001.SZ"] = context.DeadlineExceeded
	agg := NewMarketAggregator(md)

	if _, _, _, err := agg.Aggregate(context.Background(), []string{"000001.SZ"}, "20240105"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAggregateIssuesThreeQueriesPerSymbol(t *testing.T) {
	md := marketDataFixture()
	agg := NewMarketAggregator(md)

	if _, _, _, err := agg.Aggregate(context.Background(), []string{"000001.SZ"}, "20240105"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"daily:000001.SZ", "moneyflow:000001.SZ", "margin:000001.SZ"}
	if len(md.calls) != len(want) {
		t.Fatalf("calls = %v", md.calls)
	}
	for i := range want {
		if md.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, md.calls[i], want[i])
		}
	}
}

func TestAggregateServesRepeatQueriesFromCache(t *testing.T) {
	md := marketDataFixture()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	agg := NewMarketAggregator(md, WithCache(mem, time.Hour))

	first, _, _, err := agg.Aggregate(context.Background(), []string{"000001.SZ"}, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.calls) != 3 {
		t.Fatalf("calls after first run = %d, want 3", len(md.calls))
	}

	second, _, _, err := agg.Aggregate(context.Background(), []string{"000001.SZ"}, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.calls) != 3 {
		t.Fatalf("cached run hit the provider: %v", md.calls)
	}
	if len(second.Rows) != len(first.Rows) {
		t.Fatalf("cached rows = %d, want %d", len(second.Rows), len(first.Rows))
	}
	if second.Rows[0].Values["pct_chg"] != first.Rows[0].Values["pct_chg"] {
		t.Fatalf("cached values differ: %v vs %v", second.Rows[0].Values, first.Rows[0].Values)
	}
}
