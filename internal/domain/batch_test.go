package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(total, eng int) ScoreRecord {
	return ScoreRecord{
		Scores: Scores{Total: total, Engineering: eng},
	}
}

func TestSummarizeBatchEmpty(t *testing.T) {
	s := SummarizeBatch(nil, 3, 0.2)
	assert.Equal(t, 3, s.BatchID)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.AvgTotal)
	assert.False(t, s.DeviationFlag)
}

func TestSummarizeBatchAverages(t *testing.T) {
	s := SummarizeBatch([]ScoreRecord{rec(50, 20), rec(51, 21)}, 1, 0.2)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 50.5, s.AvgTotal)
	assert.Equal(t, 20.5, s.AvgEngineering)
	// spread 1 over avg 50.5 is well under the threshold
	assert.False(t, s.DeviationFlag)
}

func TestSummarizeBatchDeviationFlag(t *testing.T) {
	s := SummarizeBatch([]ScoreRecord{rec(10, 0), rec(90, 0)}, 1, 0.2)
	assert.True(t, s.DeviationFlag, "spread 80 over avg 50 exceeds 0.2")

	loose := SummarizeBatch([]ScoreRecord{rec(10, 0), rec(90, 0)}, 1, 2.0)
	assert.False(t, loose.DeviationFlag)
}

func TestSummarizeBatchAllZeroTotals(t *testing.T) {
	s := SummarizeBatch([]ScoreRecord{rec(0, 0), rec(0, 0)}, 1, 0.2)
	assert.Equal(t, 0.0, s.AvgTotal)
	assert.False(t, s.DeviationFlag, "zero average never flags")
}
