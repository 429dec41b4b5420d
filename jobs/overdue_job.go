package jobs

import (
	"log"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
)

// CancelOverdueLessons sweeps scheduled lessons whose end passed more than a
// day ago without being completed and cancels them. Instructors mark real
// completions; anything this stale was a no-show.
func CancelOverdueLessons() {
	log.Println("Running job: CancelOverdueLessons...")

	cutoff := time.Now().Add(-24 * time.Hour)

	var overdueLessons []models.Lesson
	err := database.DB.
		Where("status = ? AND deleted_at IS NULL AND scheduled_at + (duration_minutes || ' minutes')::interval < ?",
			models.LessonStatusScheduled, cutoff).
		Find(&overdueLessons).Error
	if err != nil {
		log.Printf("Error checking for overdue lessons: %v", err)
		return
	}

	if len(overdueLessons) == 0 {
		log.Println("No overdue lessons found.")
		return
	}

	cancelled := 0
	for _, lesson := range overdueLessons {
		if !lesson.Status.CanTransition(models.LessonStatusCancelled) {
			continue
		}
		lesson.Status = models.LessonStatusCancelled
		if err := database.DB.Save(&lesson).Error; err != nil {
			log.Printf("🔥 Failed to cancel overdue lesson %s: %v", lesson.ID, err)
			continue
		}
		cancelled++
	}

	log.Printf("Cancelled %d of %d overdue lesson(s).", cancelled, len(overdueLessons))
}
