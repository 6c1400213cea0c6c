// career-quest-system/middleware/sse_auth.go
package middleware

import (
	"log"
	"strings"

	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

// SSEAuthMiddleware validates `token` and `device_id` from query params via
// the profile service. EventSource cannot set headers, so the SSE route
// authenticates from the query string instead of the gateway headers.
//
// Usage:
//
//	app.Get("/user/progress/stream", middleware.SSEAuthMiddleware(profileClient), progressionService.StreamUserProgressSSE)
func SSEAuthMiddleware(profileClient *services.ProfileServiceClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := strings.TrimSpace(c.Query("token"))
		deviceID := strings.TrimSpace(c.Query("device_id"))

		if accessToken == "" || deviceID == "" {
			log.Printf("[SSEAuth] ❌ Missing query params on %s", c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing token or device_id in query",
			})
		}

		resp, err := profileClient.ValidateToken(accessToken, deviceID)
		if err != nil {
			log.Printf("[SSEAuth] ❌ Validation failed for device %s: %v", deviceID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals("user_id", resp.UserID)
		c.Locals("user_roles", resp.Roles)

		return c.Next()
	}
}
