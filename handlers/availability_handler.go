package handlers

import (
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/automatch/portal/schedule"
	"github.com/automatch/portal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WindowRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (r WindowRequest) toInput() (services.WindowInput, error) {
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return services.WindowInput{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return services.WindowInput{}, err
	}
	return services.WindowInput{
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: start,
		EndTime:   end,
	}, nil
}

func CreateAvailabilityWindow(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req WindowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	window, err := services.CreateAvailabilityWindow(instructorID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

func CreateAvailabilityWindowBatch(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var reqs []WindowRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	inputs := make([]services.WindowInput, 0, len(reqs))
	for _, req := range reqs {
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		input, err := req.toInput()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		inputs = append(inputs, input)
	}

	windows, err := services.CreateAvailabilityWindowBatch(instructorID, inputs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(windows)
}

func GetAvailabilityWindow(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "windowId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid window id"})
	}

	window, err := services.GetAvailabilityWindow(id, includeDeletedQuery(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(window)
}

func UpdateAvailabilityWindow(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "windowId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid window id"})
	}
	if resp, ok := requireWindowOwner(c, id, instructorID); !ok {
		return resp
	}

	var req WindowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	window, err := services.UpdateAvailabilityWindow(id, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(window)
}

func DeleteAvailabilityWindow(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "windowId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid window id"})
	}
	if resp, ok := requireWindowOwner(c, id, instructorID); !ok {
		return resp
	}

	if err := services.DeleteAvailabilityWindow(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Availability window deleted"})
}

func RestoreAvailabilityWindow(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "windowId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid window id"})
	}
	if resp, ok := requireWindowOwner(c, id, instructorID); !ok {
		return resp
	}

	if err := services.RestoreAvailabilityWindow(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Availability window restored"})
}

// requireWindowOwner rejects writes against another instructor's window and
// writes the refusal response itself. Callers stop when it returns false.
// Admins bypass the ownership check.
func requireWindowOwner(c *fiber.Ctx, windowID, instructorID uuid.UUID) (error, bool) {
	if currentUserRole(c) == models.RoleAdmin {
		return nil, true
	}
	var window models.AvailabilityWindow
	if err := database.DB.Select("instructor_id").
		First(&window, "id = ?", windowID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability window not found"}), false
	}
	if window.InstructorID != instructorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your availability window"}), false
	}
	return nil, true
}

func DeleteMyAvailability(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if dayParam := c.Query("day"); dayParam != "" {
		day := c.QueryInt("day", -1)
		if day < 0 || day > 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "day must be between 0 and 6"})
		}
		if err := services.DeleteWindowsByInstructorAndDay(instructorID, time.Weekday(day)); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Availability windows deleted for day"})
	}

	if err := services.DeleteAllWindowsByInstructor(instructorID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All availability windows deleted"})
}

func ListInstructorAvailability(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	if dayParam := c.Query("day"); dayParam != "" {
		day := c.QueryInt("day", -1)
		if day < 0 || day > 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "day must be between 0 and 6"})
		}
		windows, err := services.ListWindowsByInstructorAndDay(instructorID, time.Weekday(day))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(windows)
	}

	windows, err := services.ListWindowsByInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(windows)
}

func parseAvailabilityQuery(c *fiber.Ctx) (time.Weekday, schedule.TimeOfDay, schedule.TimeOfDay, error) {
	day := c.QueryInt("day", -1)
	if day < 0 || day > 6 {
		return 0, 0, 0, fiber.NewError(fiber.StatusBadRequest, "day must be between 0 and 6")
	}
	start, err := schedule.ParseTimeOfDay(c.Query("start"))
	if err != nil {
		return 0, 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid start time")
	}
	end, err := schedule.ParseTimeOfDay(c.Query("end"))
	if err != nil {
		return 0, 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid end time")
	}
	return time.Weekday(day), start, end, nil
}

// CheckInstructorAvailability answers whether one live window fully contains
// the requested interval.
func CheckInstructorAvailability(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}
	day, start, end, err := parseAvailabilityQuery(c)
	if err != nil {
		ferr := err.(*fiber.Error)
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	available, err := services.CheckAvailability(instructorID, day, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"available": available})
}

// SearchAvailableInstructors lists instructor profiles with a live window
// containing the requested interval.
func SearchAvailableInstructors(c *fiber.Ctx) error {
	day, start, end, err := parseAvailabilityQuery(c)
	if err != nil {
		ferr := err.(*fiber.Error)
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	ids, err := services.FindAvailableInstructors(day, start, end)
	if err != nil {
		return serviceError(c, err)
	}
	if len(ids) == 0 {
		return c.JSON([]models.Instructor{})
	}

	var instructors []models.Instructor
	err = database.DB.Preload("User").
		Where("user_id IN ? AND deleted_at IS NULL", ids).
		Order("average_rating desc").
		Find(&instructors).Error
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instructors)
}

func GetNextAvailableSlot(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	var dayFloor *time.Weekday
	if fromParam := c.Query("from_day"); fromParam != "" {
		day := c.QueryInt("from_day", -1)
		if day < 0 || day > 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from_day must be between 0 and 6"})
		}
		weekday := time.Weekday(day)
		dayFloor = &weekday
	}

	window, err := services.NextAvailableSlot(instructorID, dayFloor)
	if err != nil {
		return serviceError(c, err)
	}
	if window == nil {
		return c.JSON(fiber.Map{"next_slot": nil})
	}
	return c.JSON(fiber.Map{"next_slot": window})
}

// ListAvailabilityByDay returns every instructor's live windows for a day.
func ListAvailabilityByDay(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil || day < 0 || day > 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "day must be between 0 and 6"})
	}

	windows, err := services.ListWindowsByDay(time.Weekday(day))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(windows)
}

// CheckWindowOverlap lets an instructor probe a candidate window against
// their own live windows before creating it.
func CheckWindowOverlap(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	day, start, end, err := parseAvailabilityQuery(c)
	if err != nil {
		ferr := err.(*fiber.Error)
		return c.Status(ferr.Code).JSON(fiber.Map{"error": ferr.Message})
	}

	var excludeID *uuid.UUID
	if excludeParam := c.Query("exclude"); excludeParam != "" {
		id, err := uuid.Parse(excludeParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exclude id"})
		}
		excludeID = &id
	}

	overlaps, err := services.HasWindowOverlap(instructorID, day, start, end, excludeID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"overlaps": overlaps})
}

func GetAvailabilitySummary(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	total, err := services.CountWindowsByInstructor(instructorID)
	if err != nil {
		return serviceError(c, err)
	}

	perDay := make(map[string]int64, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		count, err := services.CountWindowsByInstructorAndDay(instructorID, day)
		if err != nil {
			return serviceError(c, err)
		}
		perDay[day.String()] = count
	}

	return c.JSON(fiber.Map{"total_windows": total, "windows_per_day": perDay})
}
