package controllers

import (
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Dashboard returns the totals shown on the UI dashboard.
func (sc *StatsController) Dashboard(c *fiber.Ctx) error {
	totals, err := sc.stats.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(totals)
}
