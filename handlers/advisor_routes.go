// handlers/advisor_routes.go
package handlers

import (
	"strconv"

	"career-quest-system/middleware"
	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdvisorRoutes(app *fiber.App, advisorService *services.AdvisorService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/user/advisor/chat", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Question string `json:"question" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Question == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
		}

		advice, err := advisorService.Ask(userID, req.Question)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "advisor is unavailable",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"advice": advice})
	})

	secured.Get("/user/advisor/goals", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		goals, err := advisorService.SuggestWeeklyGoals(userID)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "advisor is unavailable",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"weekly_goals": goals})
	})

	secured.Get("/user/advisor/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		messages, err := advisorService.GetHistory(userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load history",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"messages": messages})
	})
}
