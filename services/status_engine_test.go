package services

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/ipocraft/ipocraft-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, MarketTimezone)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestDeriveStatusBoundaries(t *testing.T) {
	open := datePtr(2026, 1, 10)
	close := datePtr(2026, 1, 12)

	tests := []struct {
		name  string
		today time.Time
		want  models.IPOStatus
	}{
		{"day before open", date(2026, 1, 9), models.StatusUpcoming},
		{"open boundary is inclusive", date(2026, 1, 10), models.StatusOpen},
		{"inside window", date(2026, 1, 11), models.StatusOpen},
		{"close boundary is inclusive", date(2026, 1, 12), models.StatusOpen},
		{"day after close", date(2026, 1, 13), models.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(open, close, nil, tt.today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStatusListingOverridesEverything(t *testing.T) {
	today := date(2026, 3, 1)

	// Absurd close date far in the future must not matter once listed.
	got := DeriveStatus(datePtr(2026, 1, 10), datePtr(2030, 1, 1), datePtr(2026, 2, 20), today)
	assert.Equal(t, models.StatusListed, got)

	// Listing exactly today counts as listed.
	got = DeriveStatus(datePtr(2026, 1, 10), datePtr(2026, 1, 12), datePtr(2026, 3, 1), today)
	assert.Equal(t, models.StatusListed, got)

	// Future listing date does not.
	got = DeriveStatus(datePtr(2026, 1, 10), datePtr(2026, 1, 12), datePtr(2026, 3, 2), today)
	assert.Equal(t, models.StatusClosed, got)
}

func TestDeriveStatusSingleDayWindow(t *testing.T) {
	open := datePtr(2026, 1, 10)
	got := DeriveStatus(open, open, nil, date(2026, 1, 10))
	assert.Equal(t, models.StatusOpen, got)
}

func TestDeriveStatusMissingDates(t *testing.T) {
	// No dates at all falls back to Upcoming.
	assert.Equal(t, models.StatusUpcoming, DeriveStatus(nil, nil, nil, date(2026, 1, 10)))

	// Only an open date in the past and no close date must not crash and
	// falls through to the default.
	assert.Equal(t, models.StatusUpcoming, DeriveStatus(datePtr(2026, 1, 1), nil, nil, date(2026, 1, 10)))

	// Only a close date in the past reads as Closed.
	assert.Equal(t, models.StatusClosed, DeriveStatus(nil, datePtr(2026, 1, 5), nil, date(2026, 1, 10)))
}

func TestDeriveStatusIgnoresTimeOfDay(t *testing.T) {
	open := datePtr(2026, 1, 10)
	close := datePtr(2026, 1, 12)

	lateEvening := time.Date(2026, 1, 12, 23, 45, 0, 0, MarketTimezone)
	assert.Equal(t, models.StatusOpen, DeriveStatus(open, close, nil, lateEvening))
}

func TestDeriveStatusListedPriorityProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	base := date(2026, 1, 1)

	properties.Property("listing date reached always derives Listed", prop.ForAll(
		func(listingOffset, openOffset, closeOffset int) bool {
			today := base
			listing := base.AddDate(0, 0, listingOffset) // <= today by construction
			open := base.AddDate(0, 0, openOffset)
			close := base.AddDate(0, 0, closeOffset)

			return DeriveStatus(&open, &close, &listing, today) == models.StatusListed
		},
		gen.IntRange(-1000, 0),
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
	))

	properties.Property("derivation is deterministic for a fixed today", prop.ForAll(
		func(openOffset, closeOffset int) bool {
			today := base
			open := base.AddDate(0, 0, openOffset)
			close := base.AddDate(0, 0, closeOffset)

			first := DeriveStatus(&open, &close, nil, today)
			second := DeriveStatus(&open, &close, nil, today)
			return first == second
		},
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

func TestResolveAllotmentBadge(t *testing.T) {
	today := date(2026, 1, 20)

	t.Run("suppressed once listed even when flag is set", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 15), true, datePtr(2026, 1, 18), today)
		assert.Nil(t, badge)
	})

	t.Run("nil before allotment day", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 25), true, nil, today)
		assert.Nil(t, badge)
	})

	t.Run("nil without an allotment date", func(t *testing.T) {
		badge := ResolveAllotmentBadge(nil, true, nil, today)
		assert.Nil(t, badge)
	})

	t.Run("awaited when day reached and flag unset", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 18), false, nil, today)
		if assert.NotNil(t, badge) {
			assert.Equal(t, models.AllotmentAwaited, *badge)
		}
	})

	t.Run("out when day reached and flag set", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 18), true, nil, today)
		if assert.NotNil(t, badge) {
			assert.Equal(t, models.AllotmentOut, *badge)
		}
	})

	t.Run("allotment day itself counts as reached", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 20), false, nil, today)
		if assert.NotNil(t, badge) {
			assert.Equal(t, models.AllotmentAwaited, *badge)
		}
	})

	t.Run("future listing date does not suppress", func(t *testing.T) {
		badge := ResolveAllotmentBadge(datePtr(2026, 1, 18), true, datePtr(2026, 1, 25), today)
		if assert.NotNil(t, badge) {
			assert.Equal(t, models.AllotmentOut, *badge)
		}
	})
}
