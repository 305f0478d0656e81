package models

import "time"

// IPOType identifies the listing segment of an offering.
type IPOType string

const (
	IPOTypeMainboard IPOType = "mainboard"
	IPOTypeSME       IPOType = "sme"
)

// IPOStatus is the derived lifecycle status of an offering.
type IPOStatus string

const (
	StatusUpcoming IPOStatus = "Upcoming"
	StatusOpen     IPOStatus = "Open"
	StatusClosed   IPOStatus = "Closed"
	StatusListed   IPOStatus = "Listed"
)

// AllotmentBadge is the derived allotment state shown alongside an IPO.
type AllotmentBadge string

const (
	AllotmentOut     AllotmentBadge = "Allotment Out"
	AllotmentAwaited AllotmentBadge = "Allotment Awaited"
)

// IPO is one public offering as stored in the ipos table.
// Lifecycle dates are calendar dates with no meaningful time component;
// they are normalized to midnight IST at the data-access boundary.
type IPO struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`

	IPOType  IPOType `json:"ipo_type"`
	Exchange *string `json:"exchange,omitempty"`
	Sector   *string `json:"sector,omitempty"`

	// Date information
	OpenDate      *time.Time `json:"open_date"`
	CloseDate     *time.Time `json:"close_date"`
	AllotmentDate *time.Time `json:"allotment_date"`
	RefundDate    *time.Time `json:"refund_date"`
	ListingDate   *time.Time `json:"listing_date"`

	// Pricing information
	PriceMin  *float64 `json:"price_min"`
	PriceMax  *float64 `json:"price_max"`
	LotSize   *int     `json:"lot_size"`
	IssueSize *string  `json:"issue_size"`

	// GMP is the latest stored snapshot value; the authoritative series
	// lives in gmp_history.
	GMP *float64 `json:"gmp"`

	// Subscription multipliers. SubTotal is kept textual because upstream
	// entry mixes "12.4" and "12.4x" style values.
	SubTotal *string  `json:"sub_total"`
	SubQIB   *float64 `json:"sub_qib"`
	SubNII   *float64 `json:"sub_nii"`
	SubRII   *float64 `json:"sub_rii"`
	SubBHNI  *float64 `json:"sub_bhni"`
	SubSHNI  *float64 `json:"sub_shni"`

	// Admin-controlled flags
	AllotmentOut   FlexBool `json:"allotment_out"`
	AllotmentLink  *string  `json:"allotment_link"`
	StatusOverride *string  `json:"status"`

	// Audit fields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IssuePrice returns the price the GMP premium is measured against:
// the upper band when present, falling back to the lower band.
func (i *IPO) IssuePrice() *float64 {
	if i.PriceMax != nil {
		return i.PriceMax
	}
	return i.PriceMin
}
