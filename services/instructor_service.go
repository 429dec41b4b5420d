package services

import (
	"errors"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InstructorInput is the caller-facing profile shape.
type InstructorInput struct {
	HourlyRate      float64 `json:"hourly_rate"`
	Bio             *string `json:"bio"`
	YearsExperience int     `json:"years_experience"`
}

func validateInstructorInput(in InstructorInput) error {
	if in.HourlyRate <= 0 {
		return validationErrorf("hourly rate must be positive")
	}
	if in.YearsExperience < 0 {
		return validationErrorf("years of experience cannot be negative")
	}
	return nil
}

func CreateInstructorProfile(userID uuid.UUID, in InstructorInput) (*models.Instructor, error) {
	if err := validateInstructorInput(in); err != nil {
		return nil, err
	}

	var existing models.Instructor
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, conflictErrorf("instructor profile already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	instructor := models.Instructor{
		UserID:          userID,
		HourlyRate:      in.HourlyRate,
		Bio:             in.Bio,
		YearsExperience: in.YearsExperience,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instructor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("role", models.RoleInstructor).Error
	})
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func GetInstructor(userID uuid.UUID, includeDeleted bool) (*models.Instructor, error) {
	return getInstructor(database.DB, userID, includeDeleted)
}

func getInstructor(tx *gorm.DB, userID uuid.UUID, includeDeleted bool) (*models.Instructor, error) {
	query := tx.Where("user_id = ?", userID)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var instructor models.Instructor
	if err := query.First(&instructor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("instructor %s not found", userID)
		}
		return nil, err
	}
	return &instructor, nil
}

// GetInstructorDetail hydrates the user row for a public profile read.
func GetInstructorDetail(userID uuid.UUID) (*models.Instructor, error) {
	var instructor models.Instructor
	err := database.DB.
		Preload("User").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		First(&instructor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("instructor %s not found", userID)
		}
		return nil, err
	}
	return &instructor, nil
}

func UpdateInstructorProfile(userID uuid.UUID, in InstructorInput) (*models.Instructor, error) {
	if err := validateInstructorInput(in); err != nil {
		return nil, err
	}

	instructor, err := GetInstructor(userID, true)
	if err != nil {
		return nil, err
	}
	if instructor.DeletedAt != nil {
		return nil, stateErrorf("cannot update a deleted instructor")
	}

	instructor.HourlyRate = in.HourlyRate
	instructor.Bio = in.Bio
	instructor.YearsExperience = in.YearsExperience
	if err := database.DB.Save(instructor).Error; err != nil {
		return nil, err
	}
	return instructor, nil
}

// VerifyInstructor is a one-way admin action.
func VerifyInstructor(userID uuid.UUID) (*models.Instructor, error) {
	instructor, err := GetInstructor(userID, false)
	if err != nil {
		return nil, err
	}
	if instructor.IsVerified {
		return nil, stateErrorf("instructor is already verified")
	}

	instructor.IsVerified = true
	if err := database.DB.Save(instructor).Error; err != nil {
		return nil, err
	}
	return instructor, nil
}

// AddInstructorReview is the incremental shortcut path: it folds one rating
// into the stored (average, total) pair without a review row. It stays
// consistent with the full recompute only as long as callers do not mix it
// with entity reviews for the same instructor.
func AddInstructorReview(userID uuid.UUID, rating int) (*models.Instructor, error) {
	if rating < 1 || rating > 5 {
		return nil, validationErrorf("rating must be between 1 and 5")
	}

	var instructor models.Instructor
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&instructor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErrorf("instructor %s not found", userID)
			}
			return err
		}
		if instructor.DeletedAt != nil {
			return stateErrorf("cannot add a review to a deleted instructor")
		}

		instructor.AverageRating, instructor.TotalReviews =
			IncrementalAverage(instructor.AverageRating, instructor.TotalReviews, rating)
		return tx.Save(&instructor).Error
	})
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// InstructorFilter narrows the public listing.
type InstructorFilter struct {
	MinRating    *float64
	VerifiedOnly bool
}

func ListInstructors(filter InstructorFilter) ([]models.Instructor, error) {
	query := database.DB.Preload("User").Where("instructors.deleted_at IS NULL")
	if filter.VerifiedOnly {
		query = query.Where("is_verified = true")
	}
	if filter.MinRating != nil {
		query = query.Where("average_rating >= ?", *filter.MinRating)
	}

	var instructors []models.Instructor
	err := query.Order("average_rating desc").Find(&instructors).Error
	return instructors, err
}

func DeleteInstructor(userID uuid.UUID) error {
	instructor, err := GetInstructor(userID, true)
	if err != nil {
		return err
	}
	if instructor.DeletedAt != nil {
		return stateErrorf("instructor is already deleted")
	}

	return database.DB.Model(&models.Instructor{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Update("deleted_at", time.Now()).Error
}

func RestoreInstructor(userID uuid.UUID) error {
	instructor, err := GetInstructor(userID, true)
	if err != nil {
		return err
	}
	if instructor.DeletedAt == nil {
		return stateErrorf("instructor is not deleted")
	}

	return database.DB.Model(&models.Instructor{}).
		Where("user_id = ?", userID).
		Update("deleted_at", nil).Error
}
