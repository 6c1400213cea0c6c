// handlers/quest_routes.go
package handlers

import (
	"strconv"

	"career-quest-system/middleware"
	"career-quest-system/models"
	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestRoutes(app *fiber.App, questService *services.QuestService) {
	// 🔓 Public within the gateway: quest catalog is not user-specific
	app.Get("/quests", func(c *fiber.Ctx) error {
		career := c.Query("career")
		if career == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "career query parameter is required"})
		}
		level, _ := strconv.Atoi(c.Query("level", "0"))
		cadence := models.QuestCadence(c.Query("cadence"))

		quests, err := questService.ListQuests(career, level, cadence)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list quests",
				"cause": err.Error(),
			})
		}
		return c.JSON(quests)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/quests/generate", func(c *fiber.Ctx) error {
		type Req struct {
			Career string `json:"career" validate:"required"`
			Level  int    `json:"level"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Career == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "career is required"})
		}

		issued, err := questService.GenerateQuestsForCareer(req.Career, req.Level)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "quest generation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "quests generated",
			"career":  req.Career,
			"issued":  issued,
		})
	})

	adminGroup.Post("/quests/seed", func(c *fiber.Ctx) error {
		if err := questService.SeedDefaultQuests(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "seeding failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "default quests seeded"})
	})
}
