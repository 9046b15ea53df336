package scoring

import (
	"sort"

	"SectorPulse/internal/domain/models"
)

// Fixed blend weights; they sum to 1.0.
const (
	WeightPctChg    = 0.35
	WeightMoneyFlow = 0.25
	WeightVolume    = 0.15
	WeightAmount    = 0.10
	WeightMargin    = 0.10
	WeightNewsHeat  = 0.05
)

// Provider column names feeding the blend.
const (
	ColPctChg   = "pct_chg"
	ColVolume   = "vol"
	ColAmount   = "amount"
	ColNetMFVol = "net_mf_vol"
	ColFinBal   = "fin_bal"
)

// Score computes the composite hotness score for one sector from its three
// indicator tables and a news-heat scalar. Pure and deterministic: identical
// inputs always yield an identical score.
//
// An empty daily table short-circuits to 0.0 regardless of the other inputs.
// An empty money-flow or margin table contributes 0.0 for its indicator.
func Score(daily, moneyFlow, margin models.IndicatorTable, newsHeat float64) float64 {
	if daily.Empty() {
		return 0.0
	}

	pct := daily.Mean(ColPctChg)
	vol := daily.Mean(ColVolume)
	amt := daily.Mean(ColAmount)
	mf := moneyFlow.Mean(ColNetMFVol)
	mg := margin.Mean(ColFinBal)

	return pct*WeightPctChg +
		mf*WeightMoneyFlow +
		vol*WeightVolume +
		amt*WeightAmount +
		mg*WeightMargin +
		newsHeat*WeightNewsHeat
}

// RankSectors returns up to topN sectors sorted by score descending. The sort
// is stable: sectors with equal scores keep their input order. A topN larger
// than the input returns everything.
func RankSectors(scores []models.SectorScore, topN int) []models.SectorScore {
	ranked := make([]models.SectorScore, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN < 0 {
		topN = 0
	}
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
