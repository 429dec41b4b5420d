package handlers

import (
	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func AddFavorite(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	type Request struct {
		InstructorID string `json:"instructor_id" validate:"required,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	instructorID, _ := uuid.Parse(req.InstructorID)

	var instructorCount int64
	database.DB.Model(&models.Instructor{}).
		Where("user_id = ? AND deleted_at IS NULL", instructorID).
		Count(&instructorCount)
	if instructorCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	var existingCount int64
	database.DB.Model(&models.StudentFavorite{}).
		Where("student_id = ? AND instructor_id = ?", studentID, instructorID).
		Count(&existingCount)
	if existingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Instructor is already in favorites"})
	}

	favorite := models.StudentFavorite{
		StudentID:    studentID,
		InstructorID: instructorID,
	}
	if err := database.DB.Create(&favorite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add favorite"})
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func RemoveFavorite(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	result := database.DB.
		Where("student_id = ? AND instructor_id = ?", studentID, instructorID).
		Delete(&models.StudentFavorite{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Favorite not found"})
	}
	return c.JSON(fiber.Map{"message": "Favorite removed"})
}

func GetMyFavorites(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var favorites []models.StudentFavorite
	err = database.DB.
		Preload("Instructor").
		Preload("Instructor.User").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list favorites"})
	}
	return c.JSON(favorites)
}
