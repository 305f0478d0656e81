package models

// IPOView is the enriched view-record handed to the presentation layer:
// the stored IPO fields plus everything derived per request. Derived fields
// depend on the current date and must not be cached across day boundaries.
type IPOView struct {
	IPO

	LifecycleStatus IPOStatus       `json:"lifecycle_status"`
	AllotmentBadge  *AllotmentBadge `json:"allotment_badge,omitempty"`
	GmpTrend        GmpTrend        `json:"gmp_trend"`
}
