package services

import (
	"time"

	"github.com/ipocraft/ipocraft-backend/models"
)

// MarketTimezone is the zone all lifecycle dates are interpreted in.
// Lifecycle dates carry no meaningful time of day; normalizing to one zone
// keeps status derivation free of off-by-hours flakiness.
var MarketTimezone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// DateOnly truncates t to its calendar date in the market timezone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.In(MarketTimezone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, MarketTimezone)
}

// DeriveStatus returns exactly one lifecycle status for an IPO given its
// dates and today's date. Comparisons are date-only and inclusive at both
// ends of the subscription window. Rules apply in priority order, first
// match wins:
//
//  1. listing date reached        -> Listed (overrides everything)
//  2. before open date            -> Upcoming
//  3. inside open..close window   -> Open
//  4. past close date             -> Closed
//  5. insufficient date data      -> Upcoming
//
// Pure function of its inputs. Because "today" is an input, results must be
// recomputed per request rather than cached across calendar days.
func DeriveStatus(openDate, closeDate, listingDate *time.Time, today time.Time) models.IPOStatus {
	now := DateOnly(today)

	if listingDate != nil && !DateOnly(*listingDate).After(now) {
		return models.StatusListed
	}
	if openDate != nil && now.Before(DateOnly(*openDate)) {
		return models.StatusUpcoming
	}
	if openDate != nil && closeDate != nil &&
		!now.Before(DateOnly(*openDate)) && !now.After(DateOnly(*closeDate)) {
		return models.StatusOpen
	}
	if closeDate != nil && now.After(DateOnly(*closeDate)) {
		return models.StatusClosed
	}
	return models.StatusUpcoming
}

// ResolveAllotmentBadge decides whether an allotment badge should be shown
// for an IPO. Badges are suppressed once the IPO has listed, since they are
// no longer actionable, and before the allotment day is reached. The
// allotmentOut flag must already be a real boolean; loose upstream
// representations are coerced at the decode boundary via models.FlexBool.
func ResolveAllotmentBadge(allotmentDate *time.Time, allotmentOut bool, listingDate *time.Time, today time.Time) *models.AllotmentBadge {
	now := DateOnly(today)

	if listingDate != nil && !DateOnly(*listingDate).After(now) {
		return nil
	}
	if allotmentDate == nil || now.Before(DateOnly(*allotmentDate)) {
		return nil
	}

	badge := models.AllotmentAwaited
	if allotmentOut {
		badge = models.AllotmentOut
	}
	return &badge
}
