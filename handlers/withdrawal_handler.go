package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/services"
)

type WithdrawalRequestBody struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	PaymentDetails string  `json:"payment_details" validate:"required"`
}

func RequestWithdrawal(c *fiber.Ctx) error {
	var req WithdrawalRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.RequestWithdrawal(middleware.UserID(c), req.Amount, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func ListWithdrawals(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 10)

	query := database.DB.Model(&models.WithdrawalRequest{})
	countQuery := database.DB.Model(&models.WithdrawalRequest{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	var total int64
	var requests []models.WithdrawalRequest
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("User").Find(&requests)

	return c.JSON(fiber.Map{
		"data": requests,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type ProcessWithdrawalRequest struct {
	Note string `json:"note"`
}

func ApproveWithdrawal(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req ProcessWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := services.ApproveWithdrawal(middleware.UserID(c), requestID, req.Note); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Withdrawal approved"})
}

func CompleteWithdrawal(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req ProcessWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := services.CompleteWithdrawal(middleware.UserID(c), requestID, req.Note); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Withdrawal completed, payment sent"})
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func RejectWithdrawal(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req RejectWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.RejectWithdrawal(middleware.UserID(c), requestID, req.Reason); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Withdrawal rejected and amount refunded"})
}
