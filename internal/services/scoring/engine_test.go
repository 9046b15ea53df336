package scoring

import (
	"math"
	"testing"

	"SectorPulse/internal/domain/models"
)

func tableWith(col string, values ...float64) models.IndicatorTable {
	var t models.IndicatorTable
	for _, v := range values {
		t.Append(models.IndicatorRow{Values: map[string]float64{col: v}})
	}
	return t
}

func TestScoreBankingScenario(t *testing.T) {
	// Means: pct_chg 1.2, vol 1000, amount 20000, net_mf_vol 500, fin_bal 300.
	daily := models.IndicatorTable{Rows: []models.IndicatorRow{
		{Symbol: "000001.SZ", Values: map[string]float64{"pct_chg": 1.0, "vol": 800, "amount": 15000}},
		{Symbol: "600036.SH", Values: map[string]float64{"pct_chg": 1.4, "vol": 1200, "amount": 25000}},
	}}
	money := tableWith("net_mf_vol", 400, 600)
	margin := tableWith("fin_bal", 300)

	got := Score(daily, money, margin, 0)
	want := 1.2*0.35 + 500*0.25 + 1000*0.15 + 20000*0.1 + 300*0.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}
	if math.Abs(got-2305.42) > 1e-9 {
		t.Fatalf("score = %v, want 2305.42", got)
	}
}

func TestScoreEmptyDailyShortCircuits(t *testing.T) {
	money := tableWith("net_mf_vol", 12345)
	margin := tableWith("fin_bal", 6789)
	if got := Score(models.IndicatorTable{}, money, margin, 99); got != 0.0 {
		t.Fatalf("score = %v, want 0.0", got)
	}
}

func TestScoreEmptySecondaryTablesContributeZero(t *testing.T) {
	daily := models.IndicatorTable{Rows: []models.IndicatorRow{
		{Values: map[string]float64{"pct_chg": 2.0, "vol": 100, "amount": 1000}},
	}}
	got := Score(daily, models.IndicatorTable{}, models.IndicatorTable{}, 0)
	want := 2.0*0.35 + 100*0.15 + 1000*0.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestScoreDeterministic(t *testing.T) {
	daily := models.IndicatorTable{Rows: []models.IndicatorRow{
		{Values: map[string]float64{"pct_chg": 0.7, "vol": 42, "amount": 314}},
	}}
	money := tableWith("net_mf_vol", -25)
	margin := tableWith("fin_bal", 11)

	first := Score(daily, money, margin, 1.5)
	for i := 0; i < 10; i++ {
		if got := Score(daily, money, margin, 1.5); got != first {
			t.Fatalf("score changed across calls: %v != %v", got, first)
		}
	}
}

func TestScoreIgnoresNaNCells(t *testing.T) {
	daily := models.IndicatorTable{Rows: []models.IndicatorRow{
		{Values: map[string]float64{"pct_chg": 1.0}},
		{Values: map[string]float64{"pct_chg": math.NaN()}},
	}}
	got := Score(daily, models.IndicatorTable{}, models.IndicatorTable{}, 0)
	if math.IsNaN(got) {
		t.Fatalf("score is NaN")
	}
	if math.Abs(got-1.0*0.35) > 1e-9 {
		t.Fatalf("score = %v, want %v", got, 0.35)
	}
}

func TestRankSectorsDescendingAndTruncated(t *testing.T) {
	scores := []models.SectorScore{
		{Sector: "Banking", Score: 2.0},
		{Sector: "Construction", Score: 5.0},
		{Sector: "Energy", Score: 3.0},
	}
	got := RankSectors(scores, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Sector != "Construction" || got[1].Sector != "Energy" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRankSectorsStableTies(t *testing.T) {
	scores := []models.SectorScore{
		{Sector: "A", Score: 1.0},
		{Sector: "B", Score: 1.0},
		{Sector: "C", Score: 1.0},
	}
	got := RankSectors(scores, 10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Sector != want {
			t.Fatalf("tie order broken at %d: %v", i, got)
		}
	}
}

func TestRankSectorsDoesNotMutateInput(t *testing.T) {
	scores := []models.SectorScore{
		{Sector: "A", Score: 1.0},
		{Sector: "B", Score: 9.0},
	}
	_ = RankSectors(scores, 1)
	if scores[0].Sector != "A" || scores[1].Sector != "B" {
		t.Fatalf("input mutated: %v", scores)
	}
}
