package services

import (
	"time"

	"github.com/ipocraft/ipocraft-backend/models"
)

// AssembleViews joins raw IPO rows with their GMP history series and derives
// the per-request view fields: lifecycle status, allotment badge, and GMP
// trend. Input order is preserved. Pure function of its inputs; the caller
// constructs "now" once at the request boundary.
func AssembleViews(ipos []models.IPO, history map[int64][]models.GmpHistoryPoint, now time.Time) []models.IPOView {
	views := make([]models.IPOView, 0, len(ipos))
	for _, ipo := range ipos {
		views = append(views, AssembleView(ipo, history[ipo.ID], now))
	}
	return views
}

// AssembleView derives the view-record for a single IPO.
func AssembleView(ipo models.IPO, points []models.GmpHistoryPoint, now time.Time) models.IPOView {
	return models.IPOView{
		IPO:             ipo,
		LifecycleStatus: DeriveStatus(ipo.OpenDate, ipo.CloseDate, ipo.ListingDate, now),
		AllotmentBadge:  ResolveAllotmentBadge(ipo.AllotmentDate, ipo.AllotmentOut.Bool(), ipo.ListingDate, now),
		GmpTrend:        ComputeGmpTrend(points, ipo.GMP, ipo.IssuePrice(), now),
	}
}
