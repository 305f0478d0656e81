package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ipocraft/ipocraft-backend/services"
)

type BrokerHandler struct {
	Service *services.BrokerService
}

func NewBrokerHandler(service *services.BrokerService) *BrokerHandler {
	return &BrokerHandler{Service: service}
}

// GetBrokers returns active brokers in comparison order.
func (h *BrokerHandler) GetBrokers(c *fiber.Ctx) error {
	brokers, err := h.Service.ListActiveBrokers(c.Context())
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
