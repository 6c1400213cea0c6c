package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"career-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transcriptWindow is how many recent messages feed the prompt context.
const transcriptWindow = 6

type AdvisorService struct {
	DB     *gorm.DB
	Client *AdvisorClient
}

func NewAdvisorService(db *gorm.DB, client *AdvisorClient) *AdvisorService {
	return &AdvisorService{DB: db, Client: client}
}

// Ask answers a career question for a user. The reply is generated from
// the user's career context plus the recent transcript. Transcript writes
// are best-effort: a failed write is logged and never fails the reply.
func (s *AdvisorService) Ask(externalUserID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if externalUserID == "" || question == "" {
		return "", errors.New("user id and question are required")
	}

	prompt := s.buildPrompt(externalUserID, question)
	advice, err := s.Client.Generate(prompt)
	if err != nil {
		return "", err
	}

	s.appendTranscript(externalUserID, models.ChatRoleUser, question)
	s.appendTranscript(externalUserID, models.ChatRoleAssistant, advice)

	return advice, nil
}

// GetHistory returns the newest transcript messages for a user, oldest first.
func (s *AdvisorService) GetHistory(externalUserID string, limit int) ([]models.AdvisorMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var messages []models.AdvisorMessage
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SuggestWeeklyGoals generates a short list of personalized weekly goals
// from the user's career path, skills, and progression level. Goals are
// advisory output only: nothing is persisted.
func (s *AdvisorService) SuggestWeeklyGoals(externalUserID string) ([]string, error) {
	if externalUserID == "" {
		return nil, errors.New("user id is required")
	}

	raw, err := s.Client.Generate(s.buildGoalsPrompt(externalUserID))
	if err != nil {
		return nil, err
	}

	goals := parseGoalList(raw)
	if len(goals) == 0 {
		return nil, errors.New("advisor returned no goals")
	}
	return goals, nil
}

func (s *AdvisorService) buildGoalsPrompt(externalUserID string) string {
	var sb strings.Builder
	sb.WriteString("You are a career coach that specializes in creating personalized weekly goals for users. Take into account career trends, the user's experience and goals.\n\n")
	sb.WriteString("Generate a list of 3 to 5 weekly goals for the user to help them advance in their career. Reply with one goal per line and no other text.\n\n")

	var user models.CareerUser
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&user).Error; err == nil {
		if user.Career != "" {
			fmt.Fprintf(&sb, "Career Path: %s\n", user.Career)
		}
		if len(user.Skills) > 0 {
			fmt.Fprintf(&sb, "User Skills: %s\n", strings.Join(user.Skills, ", "))
		} else {
			sb.WriteString("No skills listed.\n")
		}
		if user.Experience != "" {
			fmt.Fprintf(&sb, "Experience Level: %s\n", user.Experience)
		}
	}

	var prog models.UserProgress
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error; err == nil {
		fmt.Fprintf(&sb, "XP Level: %d\n", prog.Level)
	}
	return sb.String()
}

// parseGoalList splits an LLM reply into individual goals, stripping list
// markers the model tends to add despite instructions.
func parseGoalList(raw string) []string {
	var goals []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		if i := strings.IndexAny(line, ".)"); i > 0 && i <= 2 {
			if _, err := strconv.Atoi(line[:i]); err == nil {
				line = strings.TrimSpace(line[i+1:])
			}
		}
		if line != "" {
			goals = append(goals, line)
		}
	}
	return goals
}

func (s *AdvisorService) buildPrompt(externalUserID, question string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert career advisor helping users advance their careers in technology.\n\n")

	var user models.CareerUser
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&user).Error; err == nil {
		sb.WriteString("User Information:\n")
		if user.Career != "" {
			fmt.Fprintf(&sb, "Career: %s\n", user.Career)
		}
		if len(user.Skills) > 0 {
			fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(user.Skills, ", "))
		}
		if user.Experience != "" {
			fmt.Fprintf(&sb, "Experience Level: %s\n", user.Experience)
		}
	}

	history, err := s.GetHistory(externalUserID, transcriptWindow)
	if err == nil && len(history) > 0 {
		sb.WriteString("\nPrevious conversation:\n")
		for _, msg := range history {
			fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
		}
	}

	fmt.Fprintf(&sb, "\nCurrent Question: %s\n\n", question)
	sb.WriteString("Provide practical, encouraging advice with specific skills to learn, actionable next steps, and relevant resources. Respond as a knowledgeable mentor.")
	return sb.String()
}

func (s *AdvisorService) appendTranscript(externalUserID string, role models.ChatRole, content string) {
	msg := models.AdvisorMessage{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Role:           role,
		Content:        content,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("⚠️ transcript write failed for %s (%s): %v", externalUserID, role, err)
	}
}
