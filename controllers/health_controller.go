package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Status reports liveness plus database connectivity.
func (hc *HealthController) Status(c *fiber.Ctx) error {
	database := "connected"
	sqlDB, err := hc.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		database = "disconnected"
	}

	return c.JSON(fiber.Map{
		"status":    "UP",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
