package handlers

import (
	"strconv"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
)

type ClassifierRequest struct {
	Type        string  `json:"type" validate:"required,max=50"`
	Value       string  `json:"value" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

func CreateClassifier(c *fiber.Ctx) error {
	var req ClassifierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingCount int64
	database.DB.Model(&models.Classifier{}).
		Where("type = ? AND value = ?", req.Type, req.Value).
		Count(&existingCount)
	if existingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Classifier already exists"})
	}

	classifier := models.Classifier{
		Type:        req.Type,
		Value:       req.Value,
		Description: req.Description,
	}
	if err := database.DB.Create(&classifier).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create classifier"})
	}
	return c.Status(fiber.StatusCreated).JSON(classifier)
}

func ListClassifiersByType(c *fiber.Ctx) error {
	classifierType := c.Params("type")

	var classifiers []models.Classifier
	err := database.DB.
		Where("type = ?", classifierType).
		Order("value asc").
		Find(&classifiers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list classifiers"})
	}
	return c.JSON(classifiers)
}

func UpdateClassifier(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("classifierId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid classifier id"})
	}

	var req ClassifierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var classifier models.Classifier
	if err := database.DB.First(&classifier, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Classifier not found"})
	}

	var duplicateCount int64
	database.DB.Model(&models.Classifier{}).
		Where("type = ? AND value = ? AND id <> ?", req.Type, req.Value, id).
		Count(&duplicateCount)
	if duplicateCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Classifier already exists"})
	}

	classifier.Type = req.Type
	classifier.Value = req.Value
	classifier.Description = req.Description
	if err := database.DB.Save(&classifier).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update classifier"})
	}
	return c.JSON(classifier)
}

func DeleteClassifier(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("classifierId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid classifier id"})
	}

	var classifier models.Classifier
	if err := database.DB.First(&classifier, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Classifier not found"})
	}

	var inUse int64
	database.DB.Model(&models.Vehicle{}).
		Where("(transmission_type_id = ? OR category_id = ?) AND deleted_at IS NULL", id, id).
		Count(&inUse)
	if inUse == 0 {
		database.DB.Model(&models.Document{}).
			Where("document_type_id = ? AND deleted_at IS NULL", id).
			Count(&inUse)
	}
	if inUse > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Classifier is still in use"})
	}

	if err := database.DB.Delete(&classifier).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete classifier"})
	}
	return c.JSON(fiber.Map{"message": "Classifier deleted"})
}
