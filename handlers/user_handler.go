package handlers

import (
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func GetAllUsers(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 10)
	search := strings.TrimSpace(c.Query("search"))

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

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", req.IsActive).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User status updated successfully."})
}

func GetUserWallet(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var wallet models.Wallet
	if err := database.DB.First(&wallet, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
	}

	var transactions []models.WalletTransaction
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&transactions)

	return c.JSON(fiber.Map{"wallet": wallet, "transactions": transactions})
}

type DashboardAnalyticsResponse struct {
	TotalUsers             int64         `json:"total_users"`
	ActiveTasks            int64         `json:"active_tasks"`
	CompletedTasksLast30   int64         `json:"completed_tasks_last_30_days"`
	PendingWithdrawals     int64         `json:"pending_withdrawals"`
	PendingWithdrawalTotal float64       `json:"pending_withdrawal_total"`
	CommissionPaidTotal    float64       `json:"commission_paid_total"`
	RecentTasks            []models.Task `json:"recent_tasks"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	database.DB.Model(&models.User{}).Where("role = ?", "user").Count(&response.TotalUsers)
	database.DB.Model(&models.Task{}).Where("status = ?", models.TaskStatusPending).Count(&response.ActiveTasks)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Task{}).
		Where("status = ? AND updated_at > ?", models.TaskStatusCompleted, thirtyDaysAgo).
		Count(&response.CompletedTasksLast30)

	database.DB.Model(&models.WithdrawalRequest{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Count(&response.PendingWithdrawals)

	var pendingTotal float64
	database.DB.Model(&models.WithdrawalRequest{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&pendingTotal)
	response.PendingWithdrawalTotal = pendingTotal

	var commissionTotal float64
	database.DB.Model(&models.WalletTransaction{}).
		Where("type = ?", models.TxnTypeCredit).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&commissionTotal)
	response.CommissionPaidTotal = commissionTotal

	database.DB.Order("created_at desc").Limit(5).Preload("User").Preload("Seller").Find(&response.RecentTasks)

	return c.JSON(response)
}

func ListAdminLogs(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 20)

	query := database.DB.Model(&models.AdminLog{})
	countQuery := database.DB.Model(&models.AdminLog{})

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
		countQuery = countQuery.Where("action = ?", action)
	}

	var total int64
	var logs []models.AdminLog
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs)

	return c.JSON(fiber.Map{
		"data": logs,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
