package domain

import "math"

// BatchSummary aggregates sub-score averages for one processing batch,
// with a flag raised when totals spread wider than the configured
// deviation threshold (a review hint, not an error).
type BatchSummary struct {
	BatchID            int     `json:"batch_id"`
	Count              int     `json:"count"`
	AvgTotal           float64 `json:"avg_total"`
	AvgEngineering     float64 `json:"avg_engineering"`
	AvgImpact          float64 `json:"avg_impact"`
	AvgActivity        float64 `json:"avg_activity"`
	AvgAIProductivity  float64 `json:"avg_ai_productivity"`
	DeviationFlag      bool    `json:"deviation_flag"`
	DeviationThreshold float64 `json:"deviation_threshold"`
}

// SummarizeBatch computes the summary for one batch of records, in
// record order.
func SummarizeBatch(records []ScoreRecord, batchID int, deviationThreshold float64) BatchSummary {
	s := BatchSummary{
		BatchID:            batchID,
		Count:              len(records),
		DeviationThreshold: deviationThreshold,
	}
	if len(records) == 0 {
		return s
	}

	var totals []int
	var sumTotal, sumEng, sumImpact, sumActivity, sumAI int
	for _, r := range records {
		totals = append(totals, r.Scores.Total)
		sumTotal += r.Scores.Total
		sumEng += r.Scores.Engineering
		sumImpact += r.Scores.Impact
		sumActivity += r.Scores.Activity
		sumAI += r.Scores.AIProductivity
	}
	n := len(records)
	s.AvgTotal = round2(float64(sumTotal) / float64(n))
	s.AvgEngineering = round2(float64(sumEng) / float64(n))
	s.AvgImpact = round2(float64(sumImpact) / float64(n))
	s.AvgActivity = round2(float64(sumActivity) / float64(n))
	s.AvgAIProductivity = round2(float64(sumAI) / float64(n))

	if s.AvgTotal > 0 {
		minT, maxT := totals[0], totals[0]
		for _, t := range totals[1:] {
			if t < minT {
				minT = t
			}
			if t > maxT {
				maxT = t
			}
		}
		s.DeviationFlag = float64(maxT-minT)/s.AvgTotal > deviationThreshold
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
