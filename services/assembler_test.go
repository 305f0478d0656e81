package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipocraft/ipocraft-backend/models"
)

func TestAssembleViewsJoinsHistoryAndDerives(t *testing.T) {
	now := time.Date(2026, 1, 20, 11, 0, 0, 0, MarketTimezone)

	ipos := []models.IPO{
		{
			ID:        1,
			Slug:      "open-ipo",
			Name:      "Open IPO",
			IPOType:   models.IPOTypeMainboard,
			OpenDate:  datePtr(2026, 1, 19),
			CloseDate: datePtr(2026, 1, 21),
			PriceMax:  fptr(100),
		},
		{
			ID:            2,
			Slug:          "listed-ipo",
			Name:          "Listed IPO",
			IPOType:       models.IPOTypeSME,
			ListingDate:   datePtr(2026, 1, 10),
			AllotmentDate: datePtr(2026, 1, 8),
			AllotmentOut:  models.FlexBool(true),
			GMP:           fptr(42),
		},
	}
	history := map[int64][]models.GmpHistoryPoint{
		1: {
			point(50, now.Add(-2*time.Hour)),
			point(60, now.Add(-1*time.Hour)),
		},
	}

	views := AssembleViews(ipos, history, now)
	require.Len(t, views, 2)

	open := views[0]
	assert.Equal(t, "open-ipo", open.Slug)
	assert.Equal(t, models.StatusOpen, open.LifecycleStatus)
	require.NotNil(t, open.GmpTrend.Latest)
	assert.Equal(t, 60.0, *open.GmpTrend.Latest)
	require.NotNil(t, open.GmpTrend.PercentVsIssuePrice)
	assert.InDelta(t, 60.0, *open.GmpTrend.PercentVsIssuePrice, 1e-9)

	listed := views[1]
	assert.Equal(t, models.StatusListed, listed.LifecycleStatus)

	// Badge is suppressed once listed, even with the flag set.
	assert.Nil(t, listed.AllotmentBadge)

	// No history rows: the stored snapshot stands in for latest only.
	require.NotNil(t, listed.GmpTrend.Latest)
	assert.Equal(t, 42.0, *listed.GmpTrend.Latest)
	assert.Nil(t, listed.GmpTrend.High)
	assert.Equal(t, "Updated —", listed.GmpTrend.LastUpdatedRelative)
}

func TestAssembleViewsPreservesInputOrder(t *testing.T) {
	now := time.Date(2026, 1, 20, 11, 0, 0, 0, MarketTimezone)

	ipos := []models.IPO{
		{ID: 3, Slug: "c"},
		{ID: 1, Slug: "a"},
		{ID: 2, Slug: "b"},
	}

	views := AssembleViews(ipos, nil, now)
	require.Len(t, views, 3)
	assert.Equal(t, "c", views[0].Slug)
	assert.Equal(t, "a", views[1].Slug)
	assert.Equal(t, "b", views[2].Slug)
}
