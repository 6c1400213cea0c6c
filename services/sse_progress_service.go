package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"career-quest-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StreamUserProgressSSE streams newly recorded quest completions for the
// authenticated user so the dashboard can update without polling.
func (s *ProgressionService) StreamUserProgressSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastCompletedAt time.Time

		// Initialize cursor at the newest known completion
		var latest models.QuestCompletion
		if err := s.DB.
			Where("external_user_id = ?", userID).
			Order("completed_at DESC").
			First(&latest).Error; err == nil {
			lastCompletedAt = latest.CompletedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for user %s: %v", userID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var newCompletions []models.QuestCompletion
				err := s.DB.
					Where("external_user_id = ? AND completed_at > ?", userID, lastCompletedAt).
					Order("completed_at ASC").
					Find(&newCompletions).Error
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}
				if len(newCompletions) == 0 {
					continue
				}

				lastCompletedAt = newCompletions[len(newCompletions)-1].CompletedAt

				for _, completion := range newCompletions {
					payload, _ := json.Marshal(completion)
					fmt.Fprintf(w, "event: completion\ndata: %s\n\n", payload)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
