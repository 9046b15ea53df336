package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"SectorPulse/internal/domain/models"
	domsvc "SectorPulse/internal/domain/service"
)

type fakeMarketData struct {
	daily     map[string][]models.IndicatorRow
	moneyFlow map[string][]models.IndicatorRow
	margin    map[string][]models.IndicatorRow
	failDaily map[string]error
	calls     []string
}

func (f *fakeMarketData) FetchDaily(_ context.Context, symbol, _, _ string) ([]models.IndicatorRow, error) {
	f.calls = append(f.calls, "daily:"+symbol)
	if err := f.failDaily[symbol]; err != nil {
		return nil, err
	}
	return f.daily[symbol], nil
}

func (f *fakeMarketData) FetchMoneyFlow(_ context.Context, symbol, _ string) ([]models.IndicatorRow, error) {
	f.calls = append(f.calls, "moneyflow:"+symbol)
	return f.moneyFlow[symbol], nil
}

func (f *fakeMarketData) FetchMargin(_ context.Context, symbol, _ string) ([]models.IndicatorRow, error) {
	f.calls = append(f.calls, "margin:"+symbol)
	return f.margin[symbol], nil
}

type fakeUniverse struct{ sectors []models.SectorDefinition }

func (f *fakeUniverse) Sectors(context.Context) ([]models.SectorDefinition, error) {
	return f.sectors, nil
}

type fakeNarrative struct {
	failFor map[string]error
	calls   []string
}

func (f *fakeNarrative) Analyze(_ context.Context, sector string, summary models.SectorSummary) (models.AnalysisResult, error) {
	f.calls = append(f.calls, sector)
	if err := f.failFor[sector]; err != nil {
		return models.AnalysisResult{}, err
	}
	return models.AnalysisResult{
		Sector:   sector,
		Analysis: "narrative for " + sector,
		Raw:      map[string]any{"id": "cmpl"},
	}, nil
}

type fakeStore struct {
	saved   []models.AnalysisRecord
	failOn  string
	counter int
}

func (f *fakeStore) Save(_ context.Context, record *models.AnalysisRecord) error {
	if record.Summary.Sector == f.failOn {
		return errors.New("store unavailable")
	}
	f.counter++
	f.saved = append(f.saved, *record)
	return nil
}

func (f *fakeStore) Latest(context.Context, int) ([]models.AnalysisRecord, error) { return nil, nil }
func (f *fakeStore) Health(context.Context) error                                { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordSectorScore(string, float64) {}
func (nopMetrics) RecordAnalysis(string, bool)       {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordLatency(string, float64)     {}

func twoSectorUniverse() *fakeUniverse {
	return &fakeUniverse{sectors: []models.SectorDefinition{
		{Name: "Banking", Symbols: []string{"000001.SZ", "600036.SH"}},
		{Name: "Construction", Symbols: []string{"000002.SZ", "601668.SH"}},
	}}
}

func marketDataFixture() *fakeMarketData {
	row := func(sym string, vals map[string]float64) []models.IndicatorRow {
		return []models.IndicatorRow{{Symbol: sym, Values: vals}}
	}
	return &fakeMarketData{
		daily: map[string][]models.IndicatorRow{
			"000001.SZ": row("000001.SZ", map[string]float64{"pct_chg": 1.0, "vol": 800, "amount": 15000}),
			"600036.SH": row("600036.SH", map[string]float64{"pct_chg": 1.4, "vol": 1200, "amount": 25000}),
			"000002.SZ": row("000002.SZ", map[string]float64{"pct_chg": -0.5, "vol": 500, "amount": 9000}),
			"601668.SH": row("601668.SH", map[string]float64{"pct_chg": 0.3, "vol": 700, "amount": 11000}),
		},
		moneyFlow: map[string][]models.IndicatorRow{
			"000001.SZ": row("000001.SZ", map[string]float64{"net_mf_vol": 400}),
			"600036.SH": row("600036.SH", map[string]float64{"net_mf_vol": 600}),
		},
		margin: map[string][]models.IndicatorRow{
			"000001.SZ": row("000001.SZ", map[string]float64{"fin_bal": 300}),
		},
		failDaily: map[string]error{},
	}
}

func newAnalyzer(md *fakeMarketData, uni *fakeUniverse, narr *fakeNarrative, store *fakeStore) *SectorAnalyzer {
	return NewSectorAnalyzer(uni, NewMarketAggregator(md), narr, store, nil, nopMetrics{}, nil)
}

func TestRunProducesOneRecordPerSector(t *testing.T) {
	store := &fakeStore{}
	narr := &fakeNarrative{}
	analyzer := newAnalyzer(marketDataFixture(), twoSectorUniverse(), narr, store)

	results, err := analyzer.Run(context.Background(), "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if len(store.saved) != 2 {
		t.Fatalf("saved = %d, want 2", len(store.saved))
	}
	if results[0].Summary.Sector != "Banking" || results[1].Summary.Sector != "Construction" {
		t.Fatalf("universe order not preserved: %v, %v",
			results[0].Summary.Sector, results[1].Summary.Sector)
	}
}

func TestRunBankingScoreAndStats(t *testing.T) {
	store := &fakeStore{}
	analyzer := newAnalyzer(marketDataFixture(), twoSectorUniverse(), &fakeNarrative{}, store)

	results, err := analyzer.Run(context.Background(), "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	banking := results[0].Summary
	if banking.Date != "20240105" {
		t.Fatalf("date = %q", banking.Date)
	}
	want := 1.2*0.35 + 500*0.25 + 1000*0.15 + 20000*0.1 + 300*0.1
	if diff := banking.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("score = %v, want %v", banking.Score, want)
	}
	if banking.Stats.Count != 2 || banking.Stats.AvgPctChg != 1.2 || banking.Stats.NetMFVol != 500 {
		t.Fatalf("stats = %+v", banking.Stats)
	}
}

func TestRunNarrativeFailureIsIsolated(t *testing.T) {
	store := &fakeStore{}
	narr := &fakeNarrative{failFor: map[string]error{
		"Banking": &domsvc.ServiceError{Kind: domsvc.ErrKindRemote, Status: 500, Body: "boom"},
	}}
	analyzer := newAnalyzer(marketDataFixture(), twoSectorUniverse(), narr, store)

	results, err := analyzer.Run(context.Background(), "20240105")
	if err != nil {
		t.Fatalf("narrative failure must not abort the run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	degraded := results[0].Analysis
	if !degraded.Degraded {
		t.Fatalf("banking analysis should be degraded")
	}
	if degraded.Analysis != models.DegradedFailureMessage {
		t.Fatalf("analysis = %q", degraded.Analysis)
	}
	if msg, _ := degraded.Raw["error"].(string); msg == "" {
		t.Fatalf("raw.error missing: %v", degraded.Raw)
	}
	// the degraded record is persisted like any other
	if len(store.saved) != 2 {
		t.Fatalf("saved = %d, want 2", len(store.saved))
	}
	// and the following sector still got its narrative
	if results[1].Analysis.Degraded {
		t.Fatalf("construction should not be degraded")
	}
}

func TestRunAggregationFailureAborts(t *testing.T) {
	md := marketDataFixture()
	md.failDaily["000002.SZ"] = fmt.Errorf("provider down")
	store := &fakeStore{}
	narr := &fakeNarrative{}
	analyzer := newAnalyzer(md, twoSectorUniverse(), narr, store)

	results, err := analyzer.Run(context.Background(), "20240105")
	if err == nil {
		t.Fatalf("expected error")
	}
	// Banking completed before the Construction fetch failed.
	if len(results) != 1 || len(store.saved) != 1 {
		t.Fatalf("partial results = %d, saved = %d; want 1, 1", len(results), len(store.saved))
	}
	if len(narr.calls) != 1 {
		t.Fatalf("narrative calls = %d, want 1", len(narr.calls))
	}
}

func TestRunPersistenceFailureAborts(t *testing.T) {
	store := &fakeStore{failOn: "Banking"}
	analyzer := newAnalyzer(marketDataFixture(), twoSectorUniverse(), &fakeNarrative{}, store)

	_, err := analyzer.Run(context.Background(), "20240105")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved = %d, want 0", len(store.saved))
	}
}
