package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ipocraft/ipocraft-backend/jobs"
	"github.com/ipocraft/ipocraft-backend/models"
	"github.com/ipocraft/ipocraft-backend/services"
)

// AdminHandler owns the data-entry console endpoints. External payloads are
// validated and coerced here at the boundary so the services and derivation
// logic only ever see fully-typed records.
type AdminHandler struct {
	IPOService    *services.IPOService
	BrokerService *services.BrokerService
	Listing       *services.ListingService
	RefreshJob    *jobs.GMPRefreshJob
	validate      *validator.Validate
}

func NewAdminHandler(ipoService *services.IPOService, brokerService *services.BrokerService, listing *services.ListingService, refreshJob *jobs.GMPRefreshJob) *AdminHandler {
	return &AdminHandler{
		IPOService:    ipoService,
		BrokerService: brokerService,
		Listing:       listing,
		RefreshJob:    refreshJob,
		validate:      validator.New(),
	}
}

// ipoRequest is the admin console's IPO payload. Dates arrive as plain
// calendar strings and allotment_out in whatever loose shape the form
// produced; both are normalized here.
type ipoRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	IPOType  string  `json:"ipo_type" validate:"omitempty,oneof=mainboard sme"`
	Exchange *string `json:"exchange"`
	Sector   *string `json:"sector"`

	OpenDate      *string `json:"open_date" validate:"omitempty,datetime=2006-01-02"`
	CloseDate     *string `json:"close_date" validate:"omitempty,datetime=2006-01-02"`
	AllotmentDate *string `json:"allotment_date" validate:"omitempty,datetime=2006-01-02"`
	RefundDate    *string `json:"refund_date" validate:"omitempty,datetime=2006-01-02"`
	ListingDate   *string `json:"listing_date" validate:"omitempty,datetime=2006-01-02"`

	PriceMin  *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax  *float64 `json:"price_max" validate:"omitempty,gte=0"`
	LotSize   *int     `json:"lot_size" validate:"omitempty,gt=0"`
	IssueSize *string  `json:"issue_size"`

	GMP *float64 `json:"gmp"`

	SubTotal *string  `json:"sub_total"`
	SubQIB   *float64 `json:"sub_qib"`
	SubNII   *float64 `json:"sub_nii"`
	SubRII   *float64 `json:"sub_rii"`
	SubBHNI  *float64 `json:"sub_bhni"`
	SubSHNI  *float64 `json:"sub_shni"`

	AllotmentOut  interface{} `json:"allotment_out"`
	AllotmentLink *string     `json:"allotment_link" validate:"omitempty,url"`
	Status        *string     `json:"status"`
}

func (r *ipoRequest) toModel() (*models.IPO, error) {
	ipo := &models.IPO{
		Name:           r.Name,
		IPOType:        models.IPOType(r.IPOType),
		Exchange:       r.Exchange,
		Sector:         r.Sector,
		PriceMin:       r.PriceMin,
		PriceMax:       r.PriceMax,
		LotSize:        r.LotSize,
		IssueSize:      r.IssueSize,
		GMP:            r.GMP,
		SubTotal:       r.SubTotal,
		SubQIB:         r.SubQIB,
		SubNII:         r.SubNII,
		SubRII:         r.SubRII,
		SubBHNI:        r.SubBHNI,
		SubSHNI:        r.SubSHNI,
		AllotmentOut:   models.FlexBool(models.CoerceFlag(r.AllotmentOut)),
		AllotmentLink:  r.AllotmentLink,
		StatusOverride: r.Status,
	}

	dates := []struct {
		raw  *string
		dest **time.Time
	}{
		{r.OpenDate, &ipo.OpenDate},
		{r.CloseDate, &ipo.CloseDate},
		{r.AllotmentDate, &ipo.AllotmentDate},
		{r.RefundDate, &ipo.RefundDate},
		{r.ListingDate, &ipo.ListingDate},
	}
	for _, d := range dates {
		if d.raw == nil || *d.raw == "" {
			continue
		}
		parsed, err := time.ParseInLocation("2006-01-02", *d.raw, services.MarketTimezone)
		if err != nil {
			return nil, err
		}
		*d.dest = &parsed
	}

	return ipo, nil
}

// CreateIPO creates a new offering from an admin payload.
func (h *AdminHandler) CreateIPO(c *fiber.Ctx) error {
	ipo, ok := h.parseIPORequest(c)
	if !ok {
		return nil
	}

	if err := h.IPOService.CreateIPO(c.Context(), ipo); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	h.Listing.Invalidate()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    ipo,
	})
}

// UpdateIPO persists admin edits; the slug is never regenerated.
func (h *AdminHandler) UpdateIPO(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID format",
		})
	}

	ipo, ok := h.parseIPORequest(c)
	if !ok {
		return nil
	}

	updated, err := h.IPOService.UpdateIPO(c.Context(), id, ipo)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	h.Listing.Invalidate()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// DeleteIPO removes an offering and, via cascade, its GMP history.
func (h *AdminHandler) DeleteIPO(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID format",
		})
	}

	deleted, err := h.IPOService.DeleteIPO(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	h.Listing.Invalidate()

	return c.JSON(fiber.Map{"success": true})
}

type brokerRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	LogoURL *string `json:"logo_url" validate:"omitempty,url"`

	AccountOpening     *string `json:"account_opening"`
	AccountMaintenance *string `json:"account_maintenance"`
	EquityDelivery     *string `json:"equity_delivery"`
	EquityIntraday     *string `json:"equity_intraday"`
	Futures            *string `json:"futures"`
	Options            *string `json:"options"`

	CTAURL    *string `json:"cta_url" validate:"omitempty,url"`
	Notes     *string `json:"notes"`
	SortOrder int     `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

func (r *brokerRequest) toModel() *models.Broker {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Broker{
		Name:               r.Name,
		LogoURL:            r.LogoURL,
		AccountOpening:     r.AccountOpening,
		AccountMaintenance: r.AccountMaintenance,
		EquityDelivery:     r.EquityDelivery,
		EquityIntraday:     r.EquityIntraday,
		Futures:            r.Futures,
		Options:            r.Options,
		CTAURL:             r.CTAURL,
		Notes:              r.Notes,
		SortOrder:          r.SortOrder,
		IsActive:           active,
	}
}

// ListBrokers returns every broker, including inactive ones.
func (h *AdminHandler) ListBrokers(c *fiber.Ctx) error {
	brokers, err := h.BrokerService.ListBrokers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    brokers,
	})
}

// CreateBroker adds a broker comparison entry.
func (h *AdminHandler) CreateBroker(c *fiber.Ctx) error {
	var req brokerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	broker := req.toModel()
	if err := h.BrokerService.CreateBroker(c.Context(), broker); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    broker,
	})
}

// UpdateBroker persists admin edits to a broker.
func (h *AdminHandler) UpdateBroker(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid broker ID format",
		})
	}

	var req brokerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	updated, err := h.BrokerService.UpdateBroker(c.Context(), id, req.toModel())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Broker not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// DeleteBroker removes a broker comparison entry.
func (h *AdminHandler) DeleteBroker(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid broker ID format",
		})
	}

	deleted, err := h.BrokerService.DeleteBroker(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Broker not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// TriggerGMPRefresh manually runs the GMP refresh job.
func (h *AdminHandler) TriggerGMPRefresh(c *fiber.Ctx) error {
	logrus.Info("Manual GMP refresh triggered via admin endpoint")

	startTime := time.Now()
	h.RefreshJob.Run()
	duration := time.Since(startTime)

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "GMP refresh job completed",
		"duration":  duration.String(),
		"timestamp": time.Now(),
	})
}

// parseIPORequest decodes and validates an IPO payload, writing the error
// response itself when the payload is rejected.
func (h *AdminHandler) parseIPORequest(c *fiber.Ctx) (*models.IPO, bool) {
	var req ipoRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
		return nil, false
	}

	ipo, err := req.toModel()
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid date value: " + err.Error(),
		})
		return nil, false
	}
	return ipo, true
}
