package handlers

import (
	"time"

	"github.com/automatch/portal/models"
	"github.com/automatch/portal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateLessonRequest struct {
	InstructorID    string  `json:"instructor_id" validate:"required,uuid"`
	VehicleID       *string `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	AddressID       *string `json:"address_id,omitempty" validate:"omitempty,uuid"`
	ScheduledAt     string  `json:"scheduled_at" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=30"`
	Price           float64 `json:"price" validate:"required,gt=0"`
}

func CreateLesson(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructorID, _ := uuid.Parse(req.InstructorID)
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_at must be RFC3339"})
	}

	input := services.LessonInput{
		InstructorID:    instructorID,
		StudentID:       studentID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if req.VehicleID != nil {
		vehicleID, _ := uuid.Parse(*req.VehicleID)
		input.VehicleID = &vehicleID
	}
	if req.AddressID != nil {
		addressID, _ := uuid.Parse(*req.AddressID)
		input.AddressID = &addressID
	}

	lesson, err := services.CreateLesson(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func GetLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	if c.QueryBool("detail", false) {
		lesson, err := services.GetLessonDetail(id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(lesson)
	}

	lesson, err := services.GetLesson(id, includeDeletedQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

func CompleteLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	lesson, err := services.CompleteLesson(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

func CancelLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	lesson, err := services.CancelLesson(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

func RescheduleLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	type Request struct {
		ScheduledAt string `json:"scheduled_at" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	newStart, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_at must be RFC3339"})
	}

	lesson, err := services.RescheduleLesson(id, newStart)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

type UpdateLessonRequest struct {
	VehicleID       *string  `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	AddressID       *string  `json:"address_id,omitempty" validate:"omitempty,uuid"`
	ScheduledAt     *string  `json:"scheduled_at,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=30"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

func UpdateLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	var req UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var update services.LessonUpdate
	if req.VehicleID != nil {
		vehicleID, err := uuid.Parse(*req.VehicleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
		}
		update.VehicleID = &vehicleID
	}
	if req.AddressID != nil {
		addressID, err := uuid.Parse(*req.AddressID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid address id"})
		}
		update.AddressID = &addressID
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_at must be RFC3339"})
		}
		update.ScheduledAt = &scheduledAt
	}
	update.DurationMinutes = req.DurationMinutes
	update.Price = req.Price

	lesson, err := services.UpdateLesson(id, update)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

func UpdateLessonPaymentStatus(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	type Request struct {
		Status        string  `json:"status" validate:"required"`
		PaymentMethod *string `json:"payment_method,omitempty"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status, err := models.ParsePaymentStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson, err := services.UpdateLessonPaymentStatus(id, status, req.PaymentMethod)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	if err := services.DeleteLesson(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson deleted"})
}

func RestoreLesson(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
	}

	if err := services.RestoreLesson(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson restored"})
}

// GetMyLessons lists lessons for the caller, on whichever side of the
// booking they sit.
func GetMyLessons(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var lessons []models.Lesson
	if currentUserRole(c) == models.RoleInstructor {
		lessons, err = services.ListLessonsByInstructor(userID)
	} else {
		lessons, err = services.ListLessonsByStudent(userID)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

// GetMyLessonStats returns lesson counts and money totals for the caller's
// side of the bookings.
func GetMyLessonStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if currentUserRole(c) == models.RoleInstructor {
		stats, err := services.GetInstructorLessonStats(userID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(stats)
	}

	stats, err := services.GetStudentLessonStats(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func ListInstructorLessons(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be RFC3339"})
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be RFC3339"})
		}
		lessons, err := services.ListLessonsByDateRange(&instructorID, from, to)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(lessons)
	}

	lessons, err := services.ListLessonsByInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

func ListLessonsByStatus(c *fiber.Ctx) error {
	status, err := models.ParseLessonStatus(c.Params("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lessons, err := services.ListLessonsByStatus(status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

func ListUpcomingLessons(c *fiber.Ctx) error {
	lessons, err := services.ListUpcomingLessons()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

func ListVehicleLessons(c *fiber.Ctx) error {
	vehicleID, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	lessons, err := services.ListLessonsByVehicle(vehicleID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

func ListLessonsByPaymentStatus(c *fiber.Ctx) error {
	status, err := models.ParsePaymentStatus(c.Params("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lessons, err := services.ListLessonsByPaymentStatus(status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lessons)
}

func CheckLessonConflict(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start must be RFC3339"})
	}
	duration := c.QueryInt("duration", 0)
	if duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration must be positive"})
	}

	conflict, err := services.HasScheduleConflict(instructorID, start, duration, nil)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"conflict": conflict})
}

func GetInstructorLessonStats(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	stats, err := services.GetInstructorLessonStats(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
