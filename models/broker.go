package models

import (
	"time"

	"github.com/google/uuid"
)

// Broker is one entry in the broker comparison table. Fee fields are
// display strings entered by an admin; no derived state.
type Broker struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	LogoURL *string   `json:"logo_url"`

	AccountOpening     *string `json:"account_opening"`
	AccountMaintenance *string `json:"account_maintenance"`
	EquityDelivery     *string `json:"equity_delivery"`
	EquityIntraday     *string `json:"equity_intraday"`
	Futures            *string `json:"futures"`
	Options            *string `json:"options"`

	CTAURL    *string `json:"cta_url"`
	Notes     *string `json:"notes"`
	SortOrder int     `json:"sort_order"`
	IsActive  bool    `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
