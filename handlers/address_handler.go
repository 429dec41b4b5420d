package handlers

import (
	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
)

type AddressRequest struct {
	Street       string  `json:"street" validate:"required,max=255"`
	Number       string  `json:"number" validate:"max=20"`
	Neighborhood *string `json:"neighborhood,omitempty" validate:"omitempty,max=100"`
	City         string  `json:"city" validate:"required,max=100"`
	State        string  `json:"state" validate:"required,max=100"`
	ZipCode      string  `json:"zip_code" validate:"required,max=20"`
	Country      string  `json:"country" validate:"required,max=100"`
}

// SetMyAddress creates or replaces the caller's address.
func SetMyAddress(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if user.AddressID != nil {
		var address models.Address
		if err := database.DB.First(&address, "id = ?", *user.AddressID).Error; err == nil {
			address.Street = req.Street
			address.Number = req.Number
			address.Neighborhood = req.Neighborhood
			address.City = req.City
			address.State = req.State
			address.ZipCode = req.ZipCode
			address.Country = req.Country
			if err := database.DB.Save(&address).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update address"})
			}
			return c.JSON(address)
		}
	}

	address := models.Address{
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
	}
	if err := database.DB.Create(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create address"})
	}
	if err := database.DB.Model(&user).Update("address_id", address.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to link address"})
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func GetMyAddress(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.AddressID == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No address on file"})
	}

	var address models.Address
	if err := database.DB.First(&address, "id = ?", *user.AddressID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Address not found"})
	}
	return c.JSON(address)
}
