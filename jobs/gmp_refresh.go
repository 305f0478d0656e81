package jobs

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ipocraft/ipocraft-backend/models"
	"github.com/ipocraft/ipocraft-backend/services"
)

// GMPSource supplies a fresh GMP value for one IPO. The production source
// is still a placeholder pending a licensed data feed; the interface keeps
// the refresh flow identical once a real provider is wired in.
type GMPSource interface {
	FetchGMP(ctx context.Context, ipo models.IPO) (float64, error)
}

// MockGMPSource returns pseudo-random values in the 0..199 range,
// matching the placeholder feed the portal launched with.
type MockGMPSource struct {
	rng *rand.Rand
}

func NewMockGMPSource() *MockGMPSource {
	return &MockGMPSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *MockGMPSource) FetchGMP(ctx context.Context, ipo models.IPO) (float64, error) {
	return float64(m.rng.Intn(200)), nil
}

// GMPRefreshJob periodically refreshes every IPO's GMP snapshot from the
// configured source. A gmp_history point is appended only when the fetched
// value differs from the stored one; unchanged values are no-ops.
type GMPRefreshJob struct {
	IPOService *services.IPOService
	Listing    *services.ListingService
	Source     GMPSource
}

func NewGMPRefreshJob(ipoService *services.IPOService, listing *services.ListingService, source GMPSource) *GMPRefreshJob {
	return &GMPRefreshJob{
		IPOService: ipoService,
		Listing:    listing,
		Source:     source,
	}
}

func (j *GMPRefreshJob) Run() {
	startTime := time.Now()
	logrus.Info("Running GMP refresh job...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ipos, err := j.IPOService.ListIPOs(ctx)
	if err != nil {
		logrus.Errorf("GMP refresh job failed: error listing IPOs: %v", err)
		return
	}
	if len(ipos) == 0 {
		logrus.Warn("GMP refresh job: no IPOs to refresh")
		return
	}

	updated := 0
	for _, ipo := range ipos {
		gmp, err := j.Source.FetchGMP(ctx, ipo)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ipo_slug": ipo.Slug,
				"error":    err,
			}).Warn("GMP refresh: fetch failed, skipping IPO")
			continue
		}

		changed, err := j.IPOService.UpdateGMPSnapshot(ctx, ipo.ID, gmp)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ipo_slug": ipo.Slug,
				"error":    err,
			}).Warn("GMP refresh: snapshot update failed")
			continue
		}
		if changed {
			updated++
		}
	}

	if updated > 0 && j.Listing != nil {
		j.Listing.Invalidate()
	}

	logrus.Infof("GMP refresh job completed: %d of %d IPOs updated (took %v)",
		updated, len(ipos), time.Since(startTime))
}
