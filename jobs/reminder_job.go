package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/automatch/portal/notifications"
)

func SendLessonReminders() {
	log.Println("Running job: SendLessonReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingLessons []models.Lesson

	err := database.DB.
		Preload("Student").
		Preload("Instructor.User").
		Where("status = ? AND deleted_at IS NULL AND scheduled_at BETWEEN ? AND ?",
			models.LessonStatusScheduled, lowerBound, upperBound).
		Find(&upcomingLessons).Error
	if err != nil {
		log.Printf("Error checking for upcoming lessons: %v", err)
		return
	}

	if len(upcomingLessons) == 0 {
		return
	}

	for _, lesson := range upcomingLessons {
		log.Printf("Sending reminder for lesson ID: %s", lesson.ID)

		emailSubject := "Reminder: Your Driving Lesson Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Lesson Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your driving lesson is scheduled to start in one hour at %s.</p>",
			lesson.ScheduledAt.Format(time.Kitchen),
		)

		if lesson.Student != nil {
			go notifications.SendEmail(lesson.Student.FullName, lesson.Student.Email, emailSubject, emailBody)
		}
		if lesson.Instructor != nil {
			go notifications.SendEmail(lesson.Instructor.User.FullName, lesson.Instructor.User.Email, emailSubject, emailBody)
		}
	}
}
