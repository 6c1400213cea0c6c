// handlers/catalog_routes.go
package handlers

import (
	"career-quest-system/middleware"
	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCatalogRoutes wires the read-mostly catalog surfaces: career paths,
// roadmaps, and curated resources.
func SetupCatalogRoutes(app *fiber.App, careerService *services.CareerService, roadmapService *services.RoadmapService, resourceService *services.ResourceService) {
	app.Get("/careers", func(c *fiber.Ctx) error {
		careers, err := careerService.ListCareers()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list careers",
				"cause": err.Error(),
			})
		}
		return c.JSON(careers)
	})

	app.Get("/careers/:slug", func(c *fiber.Ctx) error {
		career, err := careerService.GetCareerBySlug(c.Params("slug"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "career not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load career",
				"cause": err.Error(),
			})
		}
		return c.JSON(career)
	})

	app.Get("/roadmaps/:career", func(c *fiber.Ctx) error {
		roadmap, err := roadmapService.GetRoadmap(c.Params("career"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "roadmap not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load roadmap",
				"cause": err.Error(),
			})
		}
		return c.JSON(roadmap)
	})

	app.Get("/resources", resourceService.GetResources)

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))
	adminGroup.Post("/resources", resourceService.CreateResource)
	adminGroup.Delete("/resources/:id", resourceService.DeleteResource)
}
