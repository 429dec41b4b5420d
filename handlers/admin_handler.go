package handlers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardAnalyticsResponse struct {
	TotalStudents       int64           `json:"total_students"`
	TotalInstructors    int64           `json:"total_instructors"`
	VerifiedInstructors int64           `json:"verified_instructors"`
	TotalRevenue        float64         `json:"total_revenue"`
	LessonsLast30Days   int64           `json:"lessons_last_30_days"`
	RecentLessons       []models.Lesson `json:"recent_lessons"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse
	var totalRevenue float64

	database.DB.Model(&models.User{}).
		Where("role = ? AND deleted_at IS NULL", models.RoleStudent).
		Count(&response.TotalStudents)

	database.DB.Model(&models.Instructor{}).
		Where("deleted_at IS NULL").
		Count(&response.TotalInstructors)

	database.DB.Model(&models.Instructor{}).
		Where("is_verified = true AND deleted_at IS NULL").
		Count(&response.VerifiedInstructors)

	database.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusConfirmed).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&totalRevenue)
	response.TotalRevenue = totalRevenue

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Lesson{}).
		Where("created_at > ? AND deleted_at IS NULL", thirtyDaysAgo).
		Count(&response.LessonsLast30Days)

	database.DB.Where("deleted_at IS NULL").
		Order("created_at desc").Limit(5).
		Preload("Student").Preload("Instructor.User").
		Find(&response.RecentLessons)

	return c.JSON(response)
}

func GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	var users []models.User
	var totalUsers int64

	query := database.DB.Model(&models.User{})
	countQuery := database.DB.Model(&models.User{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
		countQuery = countQuery.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	countQuery.Count(&totalUsers)
	query.Offset(offset).Limit(limit).Find(&users)

	return c.JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{
			"total_users":  totalUsers,
			"total_pages":  int(math.Ceil(float64(totalUsers) / float64(limit))),
			"current_page": page,
		},
	})
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")
	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", req.IsActive)
	if result.Error != nil || result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User status updated successfully."})
}

// AdminDeleteUser soft deletes a user and, for instructors, their profile,
// windows and vehicles. Lessons and reviews stay for bookkeeping.
func AdminDeleteUser(c *fiber.Ctx) error {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	now := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ? AND deleted_at IS NULL", userID).Error; err != nil {
			return err
		}

		if user.Role == models.RoleInstructor {
			if err := tx.Model(&models.AvailabilityWindow{}).
				Where("instructor_id = ? AND deleted_at IS NULL", userID).
				Update("deleted_at", &now).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Vehicle{}).
				Where("instructor_id = ? AND deleted_at IS NULL", userID).
				Update("deleted_at", &now).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Instructor{}).
				Where("user_id = ? AND deleted_at IS NULL", userID).
				Update("deleted_at", &now).Error; err != nil {
				return err
			}
		}

		return tx.Model(&user).Update("deleted_at", &now).Error
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
