package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipocraft/ipocraft-backend/models"
)

func fptr(v float64) *float64 { return &v }

func point(gmp float64, at time.Time) models.GmpHistoryPoint {
	return models.GmpHistoryPoint{GMP: gmp, ObservedAt: at}
}

func TestComputeGmpTrendEmptyHistoryWithFallback(t *testing.T) {
	now := time.Now()
	trend := ComputeGmpTrend(nil, fptr(150), nil, now)

	require.NotNil(t, trend.Latest)
	assert.Equal(t, 150.0, *trend.Latest)
	assert.Nil(t, trend.Previous)
	assert.Nil(t, trend.ChangePercent)
	assert.Nil(t, trend.Direction)

	// Fallback never widens high/low; only history points count.
	assert.Nil(t, trend.High)
	assert.Nil(t, trend.Low)
	assert.Equal(t, "Updated —", trend.LastUpdatedRelative)
}

func TestComputeGmpTrendEmptyHistoryNoFallback(t *testing.T) {
	trend := ComputeGmpTrend(nil, nil, nil, time.Now())
	assert.Nil(t, trend.Latest)
	assert.Nil(t, trend.Previous)
	assert.Nil(t, trend.ChangePercent)
}

func TestComputeGmpTrendTwoPoints(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(1 * time.Hour)
	now := t2.Add(5 * time.Minute)

	trend := ComputeGmpTrend(
		[]models.GmpHistoryPoint{point(100, t1), point(120, t2)},
		nil, nil, now,
	)

	require.NotNil(t, trend.Latest)
	require.NotNil(t, trend.Previous)
	assert.Equal(t, 120.0, *trend.Latest)
	assert.Equal(t, 100.0, *trend.Previous)

	require.NotNil(t, trend.ChangePercent)
	assert.InDelta(t, 20.0, *trend.ChangePercent, 1e-9)

	require.NotNil(t, trend.Direction)
	assert.Equal(t, models.TrendUp, *trend.Direction)

	assert.Equal(t, "Updated 5 mins ago", trend.LastUpdatedRelative)
}

func TestComputeGmpTrendZeroChangeCountsAsUp(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	trend := ComputeGmpTrend(
		[]models.GmpHistoryPoint{point(80, t1), point(80, t1.Add(time.Hour))},
		nil, nil, t1.Add(2*time.Hour),
	)

	require.NotNil(t, trend.ChangePercent)
	assert.Equal(t, 0.0, *trend.ChangePercent)
	require.NotNil(t, trend.Direction)
	assert.Equal(t, models.TrendUp, *trend.Direction)
}

func TestComputeGmpTrendDivisionByZeroGuard(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	trend := ComputeGmpTrend(
		[]models.GmpHistoryPoint{point(0, t1), point(50, t1.Add(time.Hour))},
		nil, nil, t1.Add(2*time.Hour),
	)

	assert.Nil(t, trend.ChangePercent)
	assert.Nil(t, trend.Direction)
	require.NotNil(t, trend.Latest)
	assert.Equal(t, 50.0, *trend.Latest)
}

func TestComputeGmpTrendHighLow(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	points := []models.GmpHistoryPoint{
		point(40, t1),
		point(95, t1.Add(1*time.Hour)),
		point(60, t1.Add(2*time.Hour)),
	}

	trend := ComputeGmpTrend(points, nil, nil, t1.Add(3*time.Hour))
	require.NotNil(t, trend.High)
	require.NotNil(t, trend.Low)
	assert.Equal(t, 95.0, *trend.High)
	assert.Equal(t, 40.0, *trend.Low)
}

func TestComputeGmpTrendSortsDefensively(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	// Caller passes points out of order; latest must still be the point
	// with the maximum observation time.
	points := []models.GmpHistoryPoint{
		point(120, t1.Add(2*time.Hour)),
		point(100, t1),
		point(110, t1.Add(1*time.Hour)),
	}

	trend := ComputeGmpTrend(points, nil, nil, t1.Add(3*time.Hour))
	require.NotNil(t, trend.Latest)
	require.NotNil(t, trend.Previous)
	assert.Equal(t, 120.0, *trend.Latest)
	assert.Equal(t, 110.0, *trend.Previous)
}

func TestComputeGmpTrendExcludesNonFinitePoints(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	points := []models.GmpHistoryPoint{
		point(100, t1),
		point(math.NaN(), t1.Add(1*time.Hour)),
		point(math.Inf(1), t1.Add(2*time.Hour)),
		point(110, t1.Add(3*time.Hour)),
	}

	trend := ComputeGmpTrend(points, nil, nil, t1.Add(4*time.Hour))
	require.NotNil(t, trend.Latest)
	require.NotNil(t, trend.Previous)
	assert.Equal(t, 110.0, *trend.Latest)
	assert.Equal(t, 100.0, *trend.Previous)
	assert.Equal(t, 110.0, *trend.High)
	assert.Equal(t, 100.0, *trend.Low)
}

func TestComputeGmpTrendPercentVsIssuePrice(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	points := []models.GmpHistoryPoint{point(50, t1)}

	trend := ComputeGmpTrend(points, nil, fptr(200), t1.Add(time.Hour))
	require.NotNil(t, trend.PercentVsIssuePrice)
	assert.InDelta(t, 25.0, *trend.PercentVsIssuePrice, 1e-9)

	// Zero or negative issue price disables the metric.
	trend = ComputeGmpTrend(points, nil, fptr(0), t1.Add(time.Hour))
	assert.Nil(t, trend.PercentVsIssuePrice)

	trend = ComputeGmpTrend(points, nil, nil, t1.Add(time.Hour))
	assert.Nil(t, trend.PercentVsIssuePrice)
}

func TestRelativeUpdatedLabelBuckets(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"future timestamp", -5 * time.Minute, "Updated just now"},
		{"under a minute", 30 * time.Second, "Updated just now"},
		{"one minute", 1 * time.Minute, "Updated 1 min ago"},
		{"many minutes", 45 * time.Minute, "Updated 45 mins ago"},
		{"fifty-nine minutes", 59 * time.Minute, "Updated 59 mins ago"},
		{"exactly one hour", 1 * time.Hour, "Updated 1 hr ago"},
		{"several hours", 5 * time.Hour, "Updated 5 hrs ago"},
		{"twenty-three hours", 23*time.Hour + 30*time.Minute, "Updated 23 hrs ago"},
		{"one day", 25 * time.Hour, "Updated 1 day ago"},
		{"several days", 73 * time.Hour, "Updated 3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := now.Add(-tt.elapsed)
			assert.Equal(t, tt.want, RelativeUpdatedLabel(&at, now))
		})
	}

	assert.Equal(t, "Updated —", RelativeUpdatedLabel(nil, now))
}
