package services

import (
	"sort"
	"strings"

	"github.com/ipocraft/ipocraft-backend/models"
)

// Sort keys accepted by ListingQuery.
const (
	SortByGMP     = "gmp"
	SortBySub     = "sub"
	SortByClosing = "closing"
)

// ListingQuery holds the user-chosen view over the assembled IPO list.
// Zero values are no-ops: empty search, empty/"All" status, empty type,
// activeOnly false, and empty sort key all pass records through unchanged.
type ListingQuery struct {
	Search     string
	Status     string
	IPOType    string
	ActiveOnly bool
	SortKey    string
}

// FilterAndSort produces the final ordered subset of view-records.
// Independent filter predicates apply first, the sort applies last over the
// filtered set only. Status filtering always runs against the derived
// lifecycle status, never a stored status field. Sorting is stable, so
// repeated application with the same query is idempotent.
func FilterAndSort(views []models.IPOView, q ListingQuery) []models.IPOView {
	util := NewUtilityService()

	out := make([]models.IPOView, 0, len(views))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	status := strings.TrimSpace(q.Status)
	ipoType := strings.TrimSpace(q.IPOType)

	for _, v := range views {
		if search != "" &&
			!strings.Contains(strings.ToLower(v.Name), search) &&
			!strings.Contains(strings.ToLower(v.Slug), search) {
			continue
		}
		if status != "" && !strings.EqualFold(status, "All") &&
			!strings.EqualFold(status, string(v.LifecycleStatus)) {
			continue
		}
		if ipoType != "" && !strings.EqualFold(ipoType, string(v.IPOType)) {
			continue
		}
		if q.ActiveOnly && v.LifecycleStatus != models.StatusOpen {
			continue
		}
		out = append(out, v)
	}

	switch q.SortKey {
	case SortByGMP:
		sort.SliceStable(out, func(i, j int) bool {
			return latestGMPOrZero(out[i]) > latestGMPOrZero(out[j])
		})
	case SortBySub:
		sort.SliceStable(out, func(i, j int) bool {
			return subTotalOrZero(util, out[i]) > subTotalOrZero(util, out[j])
		})
	case SortByClosing:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].CloseDate, out[j].CloseDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	}

	return out
}

func latestGMPOrZero(v models.IPOView) float64 {
	if v.GmpTrend.Latest == nil {
		return 0
	}
	return *v.GmpTrend.Latest
}

func subTotalOrZero(util *UtilityService, v models.IPOView) float64 {
	if v.SubTotal == nil {
		return 0
	}
	return util.ExtractNumeric(*v.SubTotal)
}
