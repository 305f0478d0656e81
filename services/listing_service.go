package services

import (
	"context"
	"time"

	"github.com/ipocraft/ipocraft-backend/models"
	"github.com/ipocraft/ipocraft-backend/shared"
)

// listingSnapshot is the raw database state the listing endpoints derive
// from: all IPO rows plus their GMP history series grouped by IPO id.
type listingSnapshot struct {
	ipos    []models.IPO
	history map[int64][]models.GmpHistoryPoint
}

const listingSnapshotKey = "listing:snapshot"

// ListingService composes the read path: fetch IPO rows and GMP history,
// assemble view-records with the derived fields, then apply the caller's
// filters and sort. Only the raw snapshot is cached; status, badge, and
// trend are recomputed per request because they depend on "now".
type ListingService struct {
	IPOService *IPOService
	GMPService *GMPService
	Cache      *ViewCache
	metrics    *shared.ServiceMetrics
}

func NewListingService(ipoService *IPOService, gmpService *GMPService, cache *ViewCache) *ListingService {
	return &ListingService{
		IPOService: ipoService,
		GMPService: gmpService,
		Cache:      cache,
		metrics:    shared.NewServiceMetrics("Listing_Service"),
	}
}

// ListViews returns the filtered, sorted view-records for the given query.
// "now" is constructed once here at the request boundary and threaded
// through every derivation.
func (s *ListingService) ListViews(ctx context.Context, q ListingQuery) ([]models.IPOView, error) {
	start := time.Now()

	snap, err := s.snapshot(ctx)
	if err != nil {
		s.metrics.RecordRequest(false, time.Since(start))
		return nil, err
	}

	views := AssembleViews(snap.ipos, snap.history, time.Now())
	result := FilterAndSort(views, q)

	s.metrics.RecordRequest(true, time.Since(start))
	return result, nil
}

// ViewBySlug returns the view-record plus full history series for one IPO,
// or nils when the slug is unknown.
func (s *ListingService) ViewBySlug(ctx context.Context, slug string) (*models.IPOView, []models.GmpHistoryPoint, error) {
	ipo, err := s.IPOService.GetIPOBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if ipo == nil {
		return nil, nil, nil
	}

	history, err := s.GMPService.HistoryForIPO(ctx, ipo.ID)
	if err != nil {
		return nil, nil, err
	}

	view := AssembleView(*ipo, history, time.Now())
	return &view, history, nil
}

// Invalidate drops the cached snapshot. Called after every admin mutation
// and after the refresh job runs.
func (s *ListingService) Invalidate() {
	if s.Cache != nil {
		s.Cache.Invalidate()
	}
}

// LogMetricsSummary logs the service metrics summary.
func (s *ListingService) LogMetricsSummary() {
	if s.metrics != nil {
		s.metrics.LogSummary()
	}
}

// snapshot loads the raw rows behind the listing endpoints, preferring the
// cached copy when one is live.
func (s *ListingService) snapshot(ctx context.Context) (*listingSnapshot, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(listingSnapshotKey); ok {
			if snap, ok := cached.(*listingSnapshot); ok {
				return snap, nil
			}
		}
	}

	ipos, err := s.IPOService.ListIPOs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(ipos))
	for _, ipo := range ipos {
		ids = append(ids, ipo.ID)
	}

	history, err := s.GMPService.HistoryForIPOs(ctx, ids)
	if err != nil {
		return nil, err
	}

	snap := &listingSnapshot{ipos: ipos, history: history}
	if s.Cache != nil {
		s.Cache.Set(listingSnapshotKey, snap)
	}
	return snap, nil
}
