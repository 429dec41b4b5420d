package handlers

import (
	"github.com/automatch/portal/services"
	"github.com/gofiber/fiber/v2"
)

type InstructorProfileRequest struct {
	HourlyRate      float64 `json:"hourly_rate" validate:"required,gt=0"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	YearsExperience int     `json:"years_experience" validate:"min=0"`
}

// ApplyAsInstructor creates an instructor profile for the caller and
// promotes their role. Verification stays with admins.
func ApplyAsInstructor(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req InstructorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructor, err := services.CreateInstructorProfile(userID, services.InstructorInput{
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func GetInstructorProfile(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	instructor, err := services.GetInstructorDetail(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructor)
}

func UpdateMyInstructorProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req InstructorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructor, err := services.UpdateInstructorProfile(userID, services.InstructorInput{
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructor)
}

func VerifyInstructor(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	instructor, err := services.VerifyInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructor)
}

// RateInstructor folds a single rating into the stored aggregate without a
// review row. Admin-only escape hatch for imported or off-platform ratings.
func RateInstructor(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	type Request struct {
		Rating int `json:"rating" validate:"required,min=1,max=5"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructor, err := services.AddInstructorReview(instructorID, req.Rating)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructor)
}

func ListInstructors(c *fiber.Ctx) error {
	filter := services.InstructorFilter{
		VerifiedOnly: c.QueryBool("verified", false),
	}
	if minParam := c.Query("min_rating"); minParam != "" {
		minRating := c.QueryFloat("min_rating", 0)
		if minRating < 0 || minRating > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_rating must be between 0 and 5"})
		}
		filter.MinRating = &minRating
	}

	instructors, err := services.ListInstructors(filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructors)
}

func DeleteInstructor(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	if err := services.DeleteInstructor(instructorID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Instructor deleted"})
}

func RestoreInstructor(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	if err := services.RestoreInstructor(instructorID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Instructor restored"})
}
