// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartQuestScheduler runs the cadence jobs: retire expired quests and
// replenish the daily/weekly slates from templates.
func (s *QuestService) StartQuestScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: retire quests past their expiry, then re-issue slates so
	// users always have an active set to pick from.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			retired, err := s.RetireExpiredQuests()
			if err != nil {
				log.Printf("[Scheduler] retire expired failed: %v", err)
				return
			}
			if retired > 0 {
				log.Printf("✅ Retired %d expired quests", retired)
			}

			for career := range questTemplatesByCareer {
				if _, err := s.GenerateQuestsForCareer(career, maxTemplateLevel); err != nil {
					log.Printf("[Scheduler] failed to refresh quests for %s: %v", career, err)
				}
			}
		}),
	)
}

// maxTemplateLevel covers every template tier when refreshing slates.
const maxTemplateLevel = 10
