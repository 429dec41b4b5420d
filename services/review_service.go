package services

import (
	"errors"
	"strings"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCommentLength = 1000

// ReviewInput is the caller-facing shape for creating or updating a review.
type ReviewInput struct {
	LessonID uuid.UUID `json:"lesson_id"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
}

func validateReviewInput(in ReviewInput) error {
	if in.LessonID == uuid.Nil {
		return validationErrorf("lesson id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return validationErrorf("rating must be between 1 and 5")
	}
	if len(in.Comment) > maxCommentLength {
		return validationErrorf("comment cannot exceed %d characters", maxCommentLength)
	}
	return nil
}

// CreateReview checks the preconditions in a fixed order (lesson exists and
// is live, lesson completed, no live review yet), then writes the review and
// recomputes the instructor's aggregate inside the same transaction. A
// precondition failure never silently updates an existing review.
func CreateReview(in ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(in); err != nil {
		return nil, err
	}

	review := models.Review{
		LessonID: in.LessonID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Locking the lesson row serializes concurrent writers on the same
		// lesson, so two transactions cannot both pass the count below.
		lesson, err := getLesson(tx.Clauses(clause.Locking{Strength: "UPDATE"}), in.LessonID, false)
		if err != nil {
			return err
		}
		if lesson.CompletedAt == nil {
			return stateErrorf("cannot review a lesson that has not been completed")
		}

		var count int64
		if err := tx.Model(&models.Review{}).
			Where("lesson_id = ? AND deleted_at IS NULL", in.LessonID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictErrorf("review already exists for this lesson")
		}

		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeInstructorRating(tx, lesson.InstructorID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview replaces rating and comment. The lesson association is
// immutable; attempts to move a review to another lesson are rejected.
func UpdateReview(id uuid.UUID, in ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(in); err != nil {
		return nil, err
	}

	var review *models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getReview(tx, id, true)
		if err != nil {
			return err
		}
		if existing.DeletedAt != nil {
			return stateErrorf("cannot update a deleted review")
		}
		if existing.LessonID != in.LessonID {
			return validationErrorf("cannot change the lesson associated with a review")
		}

		existing.Rating = in.Rating
		existing.Comment = in.Comment
		if err := tx.Save(existing).Error; err != nil {
			return err
		}

		lesson, err := getLesson(tx, existing.LessonID, true)
		if err != nil {
			return err
		}
		if err := recomputeInstructorRating(tx, lesson.InstructorID); err != nil {
			return err
		}
		review = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func GetReview(id uuid.UUID, includeDeleted bool) (*models.Review, error) {
	return getReview(database.DB, id, includeDeleted)
}

func getReview(tx *gorm.DB, id uuid.UUID, includeDeleted bool) (*models.Review, error) {
	query := tx.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var review models.Review
	if err := query.First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("review %s not found", id)
		}
		return nil, err
	}
	return &review, nil
}

func GetReviewByLesson(lessonID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := database.DB.
		Where("lesson_id = ? AND deleted_at IS NULL", lessonID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("review not found for lesson %s", lessonID)
		}
		return nil, err
	}
	return &review, nil
}

// DeleteReview soft-deletes and re-aggregates: a deleted review leaves the
// live set so the instructor's materialized rating must shrink with it.
func DeleteReview(id uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		review, err := getReview(tx, id, true)
		if err != nil {
			return err
		}
		if review.DeletedAt != nil {
			return stateErrorf("review is already deleted")
		}

		if err := tx.Model(&models.Review{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", time.Now()).Error; err != nil {
			return err
		}

		lesson, err := getLesson(tx, review.LessonID, true)
		if err != nil {
			return err
		}
		return recomputeInstructorRating(tx, lesson.InstructorID)
	})
}

func RestoreReview(id uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		review, err := getReview(tx, id, true)
		if err != nil {
			return err
		}
		if review.DeletedAt == nil {
			return stateErrorf("review is not deleted")
		}

		// Same lock as CreateReview: a restore races a concurrent create for
		// the same lesson, and only one of them may leave a live review.
		lesson, err := getLesson(tx.Clauses(clause.Locking{Strength: "UPDATE"}), review.LessonID, true)
		if err != nil {
			return err
		}

		// Another live review may have been written for the lesson while
		// this one was deleted.
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("lesson_id = ? AND deleted_at IS NULL AND id != ?", review.LessonID, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflictErrorf("another live review already exists for this lesson")
		}

		if err := tx.Model(&models.Review{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error; err != nil {
			return err
		}

		return recomputeInstructorRating(tx, lesson.InstructorID)
	})
}

// recomputeInstructorRating is the single aggregation authority: the mean of
// all live reviews joined to this instructor's live lessons, rounded half up to
// two decimals, together with the count of the same set. Empty set persists
// (0.00, 0).
func recomputeInstructorRating(tx *gorm.DB, instructorID uuid.UUID) error {
	var ratings []int
	err := tx.Model(&models.Review{}).
		Joins("JOIN lessons ON reviews.lesson_id = lessons.id").
		Where("lessons.instructor_id = ? AND reviews.deleted_at IS NULL AND lessons.deleted_at IS NULL", instructorID).
		Pluck("reviews.rating", &ratings).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Instructor{}).
		Where("user_id = ?", instructorID).
		Updates(map[string]interface{}{
			"average_rating": MeanRating(ratings),
			"total_reviews":  len(ratings),
		}).Error
}

func ListReviewsByInstructor(instructorID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := database.DB.
		Joins("JOIN lessons ON reviews.lesson_id = lessons.id").
		Where("lessons.instructor_id = ? AND reviews.deleted_at IS NULL AND lessons.deleted_at IS NULL", instructorID).
		Order("reviews.created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func ListReviewsByStudent(studentID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := database.DB.
		Joins("JOIN lessons ON reviews.lesson_id = lessons.id").
		Where("lessons.student_id = ? AND reviews.deleted_at IS NULL AND lessons.deleted_at IS NULL", studentID).
		Order("reviews.created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// ListReviewsByRatingRange returns live reviews with minRating <= rating <=
// maxRating; both bounds must themselves be valid ratings.
func ListReviewsByRatingRange(minRating, maxRating int) ([]models.Review, error) {
	if minRating < 1 || minRating > 5 || maxRating < 1 || maxRating > 5 {
		return nil, validationErrorf("rating must be between 1 and 5")
	}
	if minRating > maxRating {
		return nil, validationErrorf("minimum rating cannot be greater than maximum rating")
	}
	var reviews []models.Review
	err := database.DB.
		Where("rating >= ? AND rating <= ? AND deleted_at IS NULL", minRating, maxRating).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func ListRecentReviews(limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		return nil, validationErrorf("limit must be between 1 and 100")
	}
	var reviews []models.Review
	err := database.DB.
		Where("deleted_at IS NULL").
		Order("created_at desc").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func SearchReviews(comment string) ([]models.Review, error) {
	term := strings.TrimSpace(comment)
	if term == "" {
		return nil, validationErrorf("search term is required")
	}
	var reviews []models.Review
	err := database.DB.
		Where("comment ILIKE ? AND deleted_at IS NULL", "%"+term+"%").
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// InstructorReviewStats is the aggregate shown on an instructor's public
// profile: average, count, and the per-star distribution.
type InstructorReviewStats struct {
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	Distribution  map[int]int64 `json:"distribution"`
}

func GetInstructorReviewStats(instructorID uuid.UUID) (*InstructorReviewStats, error) {
	var ratings []int
	err := database.DB.Model(&models.Review{}).
		Joins("JOIN lessons ON reviews.lesson_id = lessons.id").
		Where("lessons.instructor_id = ? AND reviews.deleted_at IS NULL AND lessons.deleted_at IS NULL", instructorID).
		Pluck("reviews.rating", &ratings).Error
	if err != nil {
		return nil, err
	}

	stats := InstructorReviewStats{
		AverageRating: MeanRating(ratings),
		TotalReviews:  int64(len(ratings)),
		Distribution:  make(map[int]int64, 5),
	}
	for star := 1; star <= 5; star++ {
		stats.Distribution[star] = 0
	}
	for _, r := range ratings {
		stats.Distribution[r]++
	}
	return &stats, nil
}

func CountReviewsByInstructor(instructorID uuid.UUID) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Review{}).
		Joins("JOIN lessons ON reviews.lesson_id = lessons.id").
		Where("lessons.instructor_id = ? AND reviews.deleted_at IS NULL AND lessons.deleted_at IS NULL", instructorID).
		Count(&count).Error
	return count, err
}
