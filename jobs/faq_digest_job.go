package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/thepalians/reviewflow/configs"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/notifications"
)

// SendUnansweredDigest mails the admin a daily summary of chatbot questions
// with no FAQ match, so the knowledge base keeps up with what users ask.
func SendUnansweredDigest() {
	log.Println("Running job: SendUnansweredDigest...")

	since := time.Now().AddDate(0, 0, -1)

	var questions []models.ChatbotUnanswered
	err := database.DB.
		Where("resolved = ? AND updated_at > ?", false, since).
		Order("asked_count desc").
		Limit(20).
		Find(&questions).Error
	if err != nil {
		log.Printf("Error loading unanswered questions: %v", err)
		return
	}

	if len(questions) == 0 {
		return
	}

	body := "<h1>Unanswered Chatbot Questions</h1><ul>"
	for _, q := range questions {
		body += fmt.Sprintf("<li>%s (asked %d times)</li>", q.Question, q.AskedCount)
	}
	body += "</ul><p>Promote the useful ones into the FAQ base from the admin panel.</p>"

	adminEmail := config.Config("ADMIN_EMAIL")
	go notifications.SendEmail("Admin", adminEmail, "Daily Chatbot Digest", body)
}
