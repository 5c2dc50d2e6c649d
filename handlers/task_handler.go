package handlers

import (
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/services"
	"gorm.io/gorm"
)

// svcError maps service errors onto HTTP responses: state conflicts are 409,
// known validation failures 400, missing records 404, anything else a logged
// generic 500.
func svcError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	case errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrWithdrawalProcessed),
		errors.Is(err, services.ErrWithdrawalNotApproved):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAssigneeInactive),
		errors.Is(err, services.ErrSellerRequired),
		errors.Is(err, services.ErrInvalidProductLink),
		errors.Is(err, services.ErrNegativeCommission),
		errors.Is(err, services.ErrInvalidRefundAmount),
		errors.Is(err, services.ErrProofRequired),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrCustomReasonRequired),
		errors.Is(err, services.ErrInvalidRejectionType),
		errors.Is(err, services.ErrRejectReasonRequired),
		errors.Is(err, services.ErrBelowMinWithdrawal),
		errors.Is(err, services.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal error"})
}

type AssignTaskRequest struct {
	UserID          string     `json:"user_id" validate:"required,uuid"`
	SellerID        *string    `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	ReviewRequestID *string    `json:"review_request_id,omitempty" validate:"omitempty,uuid"`
	ProductLink     string     `json:"product_link"`
	BrandName       string     `json:"brand_name"`
	Commission      float64    `json:"commission" validate:"gte=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        string     `json:"priority" validate:"omitempty,oneof=low normal high"`
	Notes           *string    `json:"notes,omitempty"`
}

func (r AssignTaskRequest) toInput() (services.AssignTaskInput, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return services.AssignTaskInput{}, err
	}
	in := services.AssignTaskInput{
		UserID:      userID,
		ProductLink: r.ProductLink,
		BrandName:   r.BrandName,
		Commission:  r.Commission,
		Deadline:    r.Deadline,
		Priority:    r.Priority,
		Notes:       r.Notes,
	}
	if r.SellerID != nil {
		id, err := uuid.Parse(*r.SellerID)
		if err != nil {
			return in, err
		}
		in.SellerID = &id
	}
	if r.ReviewRequestID != nil {
		id, err := uuid.Parse(*r.ReviewRequestID)
		if err != nil {
			return in, err
		}
		in.ReviewRequestID = &id
	}
	return in, nil
}

func AssignTask(c *fiber.Ctx) error {
	var req AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id in request"})
	}

	task, err := services.AssignTask(middleware.UserID(c), in)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

type BulkAssignRequest struct {
	UserIDs         []string   `json:"user_ids" validate:"required,min=1,dive,uuid"`
	SellerID        *string    `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	ReviewRequestID *string    `json:"review_request_id,omitempty" validate:"omitempty,uuid"`
	ProductLink     string     `json:"product_link"`
	BrandName       string     `json:"brand_name"`
	Commission      float64    `json:"commission" validate:"gte=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        string     `json:"priority" validate:"omitempty,oneof=low normal high"`
	Notes           *string    `json:"notes,omitempty"`
}

func BulkAssignTasks(c *fiber.Ctx) error {
	var req BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in := services.AssignTaskInput{
		ProductLink: req.ProductLink,
		BrandName:   req.BrandName,
		Commission:  req.Commission,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Notes:       req.Notes,
	}
	if req.SellerID != nil {
		id, err := uuid.Parse(*req.SellerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid seller id"})
		}
		in.SellerID = &id
	}
	if req.ReviewRequestID != nil {
		id, err := uuid.Parse(*req.ReviewRequestID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review request id"})
		}
		in.ReviewRequestID = &id
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id: " + raw})
		}
		userIDs = append(userIDs, id)
	}

	result := services.BulkAssignTasks(middleware.UserID(c), userIDs, in)
	return c.JSON(result)
}

type ApproveRefundRequest struct {
	RefundAmount float64 `json:"refund_amount" validate:"required,gt=0"`
	PaymentProof string  `json:"payment_proof" validate:"required"`
}

func ApproveRefund(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}

	var req ApproveRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.ApproveRefund(middleware.UserID(c), taskID, req.RefundAmount, req.PaymentProof); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Refund approved and commission credited"})
}

type RejectRefundRequest struct {
	RejectionType string `json:"rejection_type" validate:"required,oneof=quality guidelines proof duplicate other"`
	ReasonCode    string `json:"reason_code" validate:"required"`
	CustomReason  string `json:"custom_reason"`
}

func RejectRefund(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task id"})
	}

	var req RejectRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.RejectRefund(middleware.UserID(c), taskID, req.RejectionType, req.ReasonCode, req.CustomReason); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Refund rejected"})
}

func ListTasks(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 10)

	query := database.DB.Model(&models.Task{})
	countQuery := database.DB.Model(&models.Task{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
		countQuery = countQuery.Where("user_id = ?", userID)
	}
	if c.QueryBool("refund_requested") {
		query = query.Where("refund_requested = ?", true)
		countQuery = countQuery.Where("refund_requested = ?", true)
	}

	var total int64
	var tasks []models.Task
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("User").Preload("Seller").Find(&tasks)

	return c.JSON(fiber.Map{
		"data": tasks,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func GetTask(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	var task models.Task
	if err := database.DB.Preload("User").Preload("Seller").Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_number asc")
	}).First(&task, "id = ?", taskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var rejections []models.TaskRejection
	database.DB.Where("task_id = ?", task.ID).Order("created_at desc").Find(&rejections)

	return c.JSON(fiber.Map{"task": task, "rejections": rejections})
}
