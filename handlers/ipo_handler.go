package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ipocraft/ipocraft-backend/services"
)

type IPOHandler struct {
	Listing *services.ListingService
}

func NewIPOHandler(listing *services.ListingService) *IPOHandler {
	return &IPOHandler{Listing: listing}
}

// GetIPOs returns the assembled listing, filtered and sorted by query
// params: search, status, type, active, sort (gmp|sub|closing).
func (h *IPOHandler) GetIPOs(c *fiber.Ctx) error {
	query := services.ListingQuery{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		IPOType:    c.Query("type"),
		ActiveOnly: c.QueryBool("active"),
		SortKey:    c.Query("sort"),
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

// GetIPOBySlug returns one IPO's view-record plus its full GMP history
// series for the detail page chart.
func (h *IPOHandler) GetIPOBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	view, history, err := h.Listing.ViewBySlug(c.Context(), slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if view == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "IPO not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"ipo":     view,
			"history": history,
		},
	})
}
