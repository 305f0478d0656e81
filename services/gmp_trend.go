package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ipocraft/ipocraft-backend/models"
)

// ComputeGmpTrend builds the display-ready trend summary for one IPO from
// its GMP history series. The series is sorted defensively by observation
// time so callers are not held to a fragile ordering contract, and
// non-finite values are dropped rather than propagated into aggregates.
//
// fallbackGMP is the IPO's stored snapshot value; it only substitutes for
// the latest value when the history is empty and never widens high/low.
// issuePrice is typically price_max falling back to price_min.
func ComputeGmpTrend(points []models.GmpHistoryPoint, fallbackGMP, issuePrice *float64, now time.Time) models.GmpTrend {
	series := make([]models.GmpHistoryPoint, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.GMP) || math.IsInf(p.GMP, 0) {
			continue
		}
		series = append(series, p)
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].ObservedAt.Before(series[j].ObservedAt)
	})

	var trend models.GmpTrend

	if len(series) > 0 {
		latest := series[len(series)-1]
		v := latest.GMP
		trend.Latest = &v
		t := latest.ObservedAt
		trend.LastUpdatedAt = &t

		high, low := series[0].GMP, series[0].GMP
		for _, p := range series[1:] {
			if p.GMP > high {
				high = p.GMP
			}
			if p.GMP < low {
				low = p.GMP
			}
		}
		trend.High = &high
		trend.Low = &low
	} else if fallbackGMP != nil && !math.IsNaN(*fallbackGMP) && !math.IsInf(*fallbackGMP, 0) {
		v := *fallbackGMP
		trend.Latest = &v
	}

	if len(series) >= 2 {
		v := series[len(series)-2].GMP
		trend.Previous = &v
	}

	if trend.Latest != nil && trend.Previous != nil && *trend.Previous != 0 {
		change := (*trend.Latest - *trend.Previous) / *trend.Previous * 100
		trend.ChangePercent = &change

		dir := models.TrendDown
		if change >= 0 {
			dir = models.TrendUp
		}
		trend.Direction = &dir
	}

	if trend.Latest != nil && issuePrice != nil && !math.IsNaN(*issuePrice) && *issuePrice > 0 {
		pct := *trend.Latest / *issuePrice * 100
		trend.PercentVsIssuePrice = &pct
	}

	trend.LastUpdatedRelative = RelativeUpdatedLabel(trend.LastUpdatedAt, now)

	return trend
}

// RelativeUpdatedLabel renders a human-readable "time since last update"
// string. Future timestamps and anything under a minute read as "just now";
// buckets then step through minutes, hours, and floor(hours/24) days.
func RelativeUpdatedLabel(updatedAt *time.Time, now time.Time) string {
	if updatedAt == nil {
		return "Updated —"
	}

	elapsed := now.Sub(*updatedAt)
	if elapsed < 0 {
		return "Updated just now"
	}

	mins := int(elapsed.Minutes())
	if mins < 1 {
		return "Updated just now"
	}
	if mins < 60 {
		if mins > 1 {
			return fmt.Sprintf("Updated %d mins ago", mins)
		}
		return "Updated 1 min ago"
	}

	hrs := int(elapsed.Hours())
	if hrs == 1 {
		return "Updated 1 hr ago"
	}
	if hrs < 24 {
		return fmt.Sprintf("Updated %d hrs ago", hrs)
	}

	days := hrs / 24
	if days > 1 {
		return fmt.Sprintf("Updated %d days ago", days)
	}
	return "Updated 1 day ago"
}
