package models

import "time"

// GmpHistoryPoint is one time-stamped GMP observation for one IPO.
// Points are append-only: a point is written whenever an admin edit or the
// refresh job changes an IPO's GMP to a value different from the previous
// stored value. Deleting the parent IPO cascades to its history.
type GmpHistoryPoint struct {
	ID         int64     `json:"id"`
	IPOID      int64     `json:"ipo_id"`
	GMP        float64   `json:"gmp"`
	ObservedAt time.Time `json:"observed_at"`
}

// TrendDirection labels which way the latest GMP change moved.
// Zero change counts as up.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// GmpTrend is the display-ready trend summary computed from an IPO's
// GMP history series plus the stored snapshot value as a fallback.
type GmpTrend struct {
	Latest              *float64        `json:"latest"`
	Previous            *float64        `json:"previous"`
	ChangePercent       *float64        `json:"change_percent"`
	Direction           *TrendDirection `json:"direction"`
	High                *float64        `json:"high"`
	Low                 *float64        `json:"low"`
	PercentVsIssuePrice *float64        `json:"percent_vs_issue_price"`
	LastUpdatedAt       *time.Time      `json:"last_updated_at"`
	LastUpdatedRelative string          `json:"last_updated_relative"`
}
