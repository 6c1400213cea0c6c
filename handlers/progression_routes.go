// handlers/progression_routes.go
package handlers

import (
	"strconv"

	"career-quest-system/middleware"
	"career-quest-system/models"
	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProgressionRoutes(app *fiber.App, progressionService *services.ProgressionService, questService *services.QuestService, badgeService *services.BadgeService) {
	// 🔐 Secured routes: require user context (userID, roles)
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := progressionService.EnsureProgressRecord(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"id":                  prog.ID,
			"xp":                  prog.XP,
			"level":               prog.Level,
			"xp_to_next_level":    models.XPToNextLevel(prog.XP),
			"total_daily_quests":  prog.TotalDailyQuests,
			"total_weekly_quests": prog.TotalWeeklyQuests,
			"last_quest_id":       prog.LastQuestID,
			"last_level_up_at":    prog.LastLevelUpAt,
		})
	})

	secured.Post("/user/quests/:id/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		questID := c.Params("id")

		quest, err := questService.GetQuest(questID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quest not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load quest",
				"cause": err.Error(),
			})
		}

		result := progressionService.CompleteQuest(userID, quest.ID, quest.XPReward)
		return writeCompletionResult(c, result)
	})

	secured.Get("/user/progress/completions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))
		history, err := progressionService.GetCompletions(userID, page, size)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get completions",
				"cause": err.Error(),
			})
		}
		return c.JSON(history)
	})

	secured.Get("/user/progress/recent", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "7"))
		completions, err := progressionService.GetRecentCompletions(userID, days)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get recent completions",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"completions": completions})
	})

	secured.Get("/user/progress/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		badges, err := badgeService.GetUserBadges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(badges)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			XP     int64  `json:"xp" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		prog, err := progressionService.AwardXP(req.UserID, req.XP, req.Reason)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP award failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"xp":      prog.XP,
			"level":   prog.Level,
		})
	})
}

// writeCompletionResult maps the tagged completion outcome to HTTP.
// AlreadyCompleted is deliberately a 200: the UI shows a non-error
// "already done" state, not a failure.
func writeCompletionResult(c *fiber.Ctx, result services.CompletionResult) error {
	switch result.Status {
	case services.CompletionSuccess:
		return c.JSON(fiber.Map{
			"success":    true,
			"new_xp":     result.NewXP,
			"new_level":  result.NewLevel,
			"leveled_up": result.LeveledUp,
			"message":    result.Message,
		})
	case services.CompletionAlreadyDone:
		return c.JSON(fiber.Map{
			"success":           true,
			"already_completed": true,
			"message":           result.Message,
		})
	default:
		status := fiber.StatusInternalServerError
		switch result.Kind {
		case services.FailureInvalidInput:
			status = fiber.StatusBadRequest
		case services.FailureUserNotFound:
			status = fiber.StatusNotFound
		case services.FailurePersistence:
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"kind":    result.Kind,
			"stage":   result.Stage,
			"error":   result.Reason,
		})
	}
}
