package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ipocraft/ipocraft-backend/services"
)

type GMPHandler struct {
	Listing    *services.ListingService
	GMPService *services.GMPService
}

func NewGMPHandler(listing *services.ListingService, gmpService *services.GMPService) *GMPHandler {
	return &GMPHandler{Listing: listing, GMPService: gmpService}
}

// GetGMPTable backs the GMP trends page: every IPO with its trend summary,
// filterable and sortable like the main listing.
func (h *GMPHandler) GetGMPTable(c *fiber.Ctx) error {
	query := services.ListingQuery{
		Search:  c.Query("search"),
		IPOType: c.Query("type"),
		SortKey: c.Query("sort"),
	}

	views, err := h.Listing.ListViews(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}

// GetHistoryByIPO returns the raw GMP history series for one IPO,
// ascending by observation time.
func (h *GMPHandler) GetHistoryByIPO(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid IPO ID format",
		})
	}

	points, err := h.GMPService.HistoryForIPO(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    points,
		"count":   len(points),
	})
}
