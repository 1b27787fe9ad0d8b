package impact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, High},
		{70.0001, High},
		{70, Medium},
		{55, Medium},
		{40.0001, Medium},
		{40, Low},
		{0, Low},
		{-12, Low},
		{math.Inf(1), High},
		{math.Inf(-1), Low},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestTierTexts(t *testing.T) {
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "Medium", Medium.String())
	assert.Equal(t, "Low", Low.String())

	assert.Contains(t, High.Pros(), "High sustainability")
	assert.Contains(t, High.Cons(), "High initial investment")
	assert.Contains(t, Medium.Pros(), "Balanced benefits")
	assert.Contains(t, Medium.Cons(), "policy hurdles")
	assert.Contains(t, Low.Pros(), "Cost-effective in short term")
	assert.Contains(t, Low.Cons(), "Low impact")
}
