package handlers

import (
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
)

type DocumentRequest struct {
	DocumentTypeID   int     `json:"document_type_id" validate:"required"`
	DocumentNumber   string  `json:"document_number" validate:"required,max=100"`
	DocumentImageURL *string `json:"document_image_url,omitempty" validate:"omitempty,url"`
	IssueDate        *string `json:"issue_date,omitempty"`
	ExpiryDate       *string `json:"expiry_date,omitempty"`
}

func SubmitDocument(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req DocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var typeCount int64
	database.DB.Model(&models.Classifier{}).
		Where("id = ? AND type = ?", req.DocumentTypeID, "document_type").
		Count(&typeCount)
	if typeCount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document type"})
	}

	var numberCount int64
	database.DB.Model(&models.Document{}).
		Where("document_number = ? AND deleted_at IS NULL", req.DocumentNumber).
		Count(&numberCount)
	if numberCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A document with this number already exists"})
	}

	document := models.Document{
		UserID:           userID,
		DocumentTypeID:   req.DocumentTypeID,
		DocumentNumber:   req.DocumentNumber,
		DocumentImageURL: req.DocumentImageURL,
	}
	if req.IssueDate != nil {
		issued, err := time.Parse("2006-01-02", *req.IssueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "issue_date must be YYYY-MM-DD"})
		}
		document.IssueDate = &issued
	}
	if req.ExpiryDate != nil {
		expires, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expiry_date must be YYYY-MM-DD"})
		}
		document.ExpiryDate = &expires
	}

	if err := database.DB.Create(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit document"})
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}

func GetMyDocuments(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var documents []models.Document
	err = database.DB.
		Preload("DocumentType").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Find(&documents).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list documents"})
	}
	return c.JSON(documents)
}

func ListPendingDocuments(c *fiber.Ctx) error {
	var documents []models.Document
	err := database.DB.
		Preload("DocumentType").
		Where("is_verified = false AND deleted_at IS NULL").
		Order("created_at asc").
		Find(&documents).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list documents"})
	}
	return c.JSON(documents)
}

func VerifyDocument(c *fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "documentId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	type Request struct {
		Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var document models.Document
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&document).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	if document.IsVerified {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Document is already verified"})
	}
	if document.ExpiryDate != nil && document.ExpiryDate.Before(time.Now()) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Document has expired"})
	}

	now := time.Now()
	document.IsVerified = true
	document.VerifiedByUserID = &adminID
	document.VerifiedAt = &now
	document.VerificationNotes = req.Notes

	if err := database.DB.Save(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify document"})
	}
	return c.JSON(document)
}

func DeleteDocument(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "documentId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	var document models.Document
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&document).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	if document.UserID != userID && currentUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your document"})
	}

	now := time.Now()
	if err := database.DB.Model(&document).Update("deleted_at", &now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete document"})
	}
	return c.JSON(fiber.Map{"message": "Document deleted"})
}
