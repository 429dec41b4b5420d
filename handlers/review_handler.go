package handlers

import (
	"github.com/automatch/portal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewRequest struct {
	LessonID string `json:"lesson_id" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=1000"`
}

func CreateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	lessonID, _ := uuid.Parse(req.LessonID)

	review, err := services.CreateReview(services.ReviewInput{
		LessonID: lessonID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func UpdateReview(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "reviewId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	lessonID, _ := uuid.Parse(req.LessonID)

	review, err := services.UpdateReview(id, services.ReviewInput{
		LessonID: lessonID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(review)
}

func GetReview(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "reviewId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	review, err := services.GetReview(id, includeDeletedQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(review)
}

func GetLessonReview(c *fiber.Ctx) error {
	lessonID, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	review, err := services.GetReviewByLesson(lessonID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(review)
}

func DeleteReview(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "reviewId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	if err := services.DeleteReview(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

func RestoreReview(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "reviewId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	if err := services.RestoreReview(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review restored"})
}

func ListInstructorReviews(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	reviews, err := services.ListReviewsByInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	total, err := services.CountReviewsByInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"total": total, "reviews": reviews})
}

func GetMyReviews(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	reviews, err := services.ListReviewsByStudent(studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(reviews)
}

func ListRecentReviews(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	reviews, err := services.ListRecentReviews(limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(reviews)
}

func SearchReviews(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q is required"})
	}

	reviews, err := services.SearchReviews(query)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(reviews)
}

func ListReviewsByRating(c *fiber.Ctx) error {
	min := c.QueryInt("min", 1)
	max := c.QueryInt("max", 5)

	reviews, err := services.ListReviewsByRatingRange(min, max)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(reviews)
}

func GetInstructorReviewStats(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	stats, err := services.GetInstructorReviewStats(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
