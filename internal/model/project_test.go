package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		raised string
		want   float64
	}{
		{"halfway", "10", "5", 50},
		{"untouched", "10", "0", 0},
		{"exactly funded", "10", "10", 100},
		{"overfunded capped", "10", "25", 100},
		{"zero goal", "0", "5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{
				Goal:   decimal.RequireFromString(tt.goal),
				Raised: decimal.RequireFromString(tt.raised),
			}
			assert.InDelta(t, tt.want, p.ProgressPercentage(), 1e-9)
		})
	}
}

func TestIsGoalReached(t *testing.T) {
	p := Project{
		Goal:   decimal.RequireFromString("10"),
		Raised: decimal.RequireFromString("9.999"),
	}
	assert.False(t, p.IsGoalReached())

	p.Raised = decimal.RequireFromString("10")
	assert.True(t, p.IsGoalReached())
}

func TestDeadline(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := Project{DaysLeft: 30}
	p.CreatedAt = created

	assert.Equal(t, created.AddDate(0, 0, 30), p.Deadline())
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("gaming")) // 区分大小写
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Crypto"))
}

func TestValidProjectStatus(t *testing.T) {
	assert.True(t, ValidProjectStatus("active"))
	assert.True(t, ValidProjectStatus("funded"))
	assert.True(t, ValidProjectStatus("expired"))
	assert.False(t, ValidProjectStatus("completed"))
	assert.False(t, ValidProjectStatus(""))
}

func TestValidTransactionStatus(t *testing.T) {
	assert.True(t, ValidTransactionStatus("pending"))
	assert.True(t, ValidTransactionStatus("confirmed"))
	assert.True(t, ValidTransactionStatus("failed"))
	assert.False(t, ValidTransactionStatus("reverted"))
}
