package handlers

import (
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
)

type VehicleRequest struct {
	LicensePlate       string  `json:"license_plate" validate:"required,max=20"`
	Brand              string  `json:"brand" validate:"required,max=100"`
	Model              string  `json:"model" validate:"required,max=100"`
	Year               int     `json:"year" validate:"required,min=1980"`
	Color              *string `json:"color,omitempty"`
	VehicleImageURL    *string `json:"vehicle_image_url,omitempty" validate:"omitempty,url"`
	TransmissionTypeID *int    `json:"transmission_type_id,omitempty"`
	CategoryID         *int    `json:"category_id,omitempty"`
	HasDualControls    *bool   `json:"has_dual_controls,omitempty"`
	HasAirConditioning *bool   `json:"has_air_conditioning,omitempty"`
}

func RegisterVehicle(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var plateCount int64
	database.DB.Model(&models.Vehicle{}).
		Where("license_plate = ? AND deleted_at IS NULL", req.LicensePlate).
		Count(&plateCount)
	if plateCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A vehicle with this license plate already exists"})
	}

	vehicle := models.Vehicle{
		InstructorID:       instructorID,
		LicensePlate:       req.LicensePlate,
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		VehicleImageURL:    req.VehicleImageURL,
		TransmissionTypeID: req.TransmissionTypeID,
		CategoryID:         req.CategoryID,
		HasDualControls:    true,
		HasAirConditioning: true,
	}
	if req.HasDualControls != nil {
		vehicle.HasDualControls = *req.HasDualControls
	}
	if req.HasAirConditioning != nil {
		vehicle.HasAirConditioning = *req.HasAirConditioning
	}

	if err := database.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register vehicle"})
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func GetVehicle(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	var vehicle models.Vehicle
	err := database.DB.
		Preload("TransmissionType").
		Preload("Category").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&vehicle).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	return c.JSON(vehicle)
}

func UpdateVehicle(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	var vehicle models.Vehicle
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if vehicle.InstructorID != instructorID && currentUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your vehicle"})
	}

	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.LicensePlate != vehicle.LicensePlate {
		var plateCount int64
		database.DB.Model(&models.Vehicle{}).
			Where("license_plate = ? AND deleted_at IS NULL AND id <> ?", req.LicensePlate, id).
			Count(&plateCount)
		if plateCount > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A vehicle with this license plate already exists"})
		}
		// plate change voids admin approval
		vehicle.IsApproved = false
	}

	vehicle.LicensePlate = req.LicensePlate
	vehicle.Brand = req.Brand
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.Color = req.Color
	vehicle.VehicleImageURL = req.VehicleImageURL
	vehicle.TransmissionTypeID = req.TransmissionTypeID
	vehicle.CategoryID = req.CategoryID
	if req.HasDualControls != nil {
		vehicle.HasDualControls = *req.HasDualControls
	}
	if req.HasAirConditioning != nil {
		vehicle.HasAirConditioning = *req.HasAirConditioning
	}

	if err := database.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vehicle"})
	}
	return c.JSON(vehicle)
}

func ApproveVehicle(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	var vehicle models.Vehicle
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if vehicle.IsApproved {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Vehicle is already approved"})
	}

	vehicle.IsApproved = true
	if err := database.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve vehicle"})
	}
	return c.JSON(vehicle)
}

func SetVehicleAvailability(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	type Request struct {
		IsAvailable bool `json:"is_available"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var vehicle models.Vehicle
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if vehicle.InstructorID != instructorID && currentUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your vehicle"})
	}

	vehicle.IsAvailable = req.IsAvailable
	if err := database.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vehicle availability"})
	}
	return c.JSON(vehicle)
}

func RecordVehicleMaintenance(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	var vehicle models.Vehicle
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if vehicle.InstructorID != instructorID && currentUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your vehicle"})
	}

	now := time.Now()
	vehicle.LastMaintenanceDate = &now
	if err := database.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record maintenance"})
	}
	return c.JSON(vehicle)
}

func ListInstructorVehicles(c *fiber.Ctx) error {
	instructorID, ok := parseUUIDParam(c, "instructorId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid instructor id"})
	}

	var vehicles []models.Vehicle
	err := database.DB.
		Preload("TransmissionType").
		Preload("Category").
		Where("instructor_id = ? AND deleted_at IS NULL", instructorID).
		Order("created_at desc").
		Find(&vehicles).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list vehicles"})
	}
	return c.JSON(vehicles)
}

func DeleteVehicle(c *fiber.Ctx) error {
	instructorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, ok := parseUUIDParam(c, "vehicleId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle id"})
	}

	var vehicle models.Vehicle
	if err := database.DB.Where("id = ? AND deleted_at IS NULL", id).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if vehicle.InstructorID != instructorID && currentUserRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your vehicle"})
	}

	var openLessons int64
	database.DB.Model(&models.Lesson{}).
		Where("vehicle_id = ? AND status = ? AND deleted_at IS NULL", id, models.LessonStatusScheduled).
		Count(&openLessons)
	if openLessons > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Vehicle has scheduled lessons"})
	}

	now := time.Now()
	if err := database.DB.Model(&vehicle).Update("deleted_at", &now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete vehicle"})
	}
	return c.JSON(fiber.Map{"message": "Vehicle deleted"})
}
