package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func ListSellers(c *fiber.Ctx) error {
	var sellers []models.Seller
	query := database.DB.Model(&models.Seller{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&sellers)
	return c.JSON(sellers)
}

type SellerRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Email       string  `json:"email" validate:"required,email"`
	CompanyName *string `json:"company_name,omitempty"`
}

func CreateSeller(c *fiber.Ctx) error {
	var req SellerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	seller := models.Seller{
		Name:        req.Name,
		Email:       req.Email,
		CompanyName: req.CompanyName,
		Status:      "active",
	}
	if err := database.DB.Create(&seller).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create seller"})
	}
	return c.Status(fiber.StatusCreated).JSON(seller)
}

func ListReviewRequests(c *fiber.Ctx) error {
	var requests []models.ReviewRequest
	query := database.DB.Model(&models.ReviewRequest{}).Preload("Seller")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&requests)
	return c.JSON(requests)
}

type ReviewRequestBody struct {
	SellerID    string  `json:"seller_id" validate:"required,uuid"`
	ProductLink string  `json:"product_link" validate:"required,url"`
	BrandName   string  `json:"brand_name"`
	Commission  float64 `json:"commission" validate:"gte=0"`
}

func CreateReviewRequest(c *fiber.Ctx) error {
	var req ReviewRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sellerID, _ := uuid.Parse(req.SellerID)
	var seller models.Seller
	if err := database.DB.First(&seller, "id = ?", sellerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
	}

	request := models.ReviewRequest{
		SellerID:    sellerID,
		ProductLink: req.ProductLink,
		BrandName:   req.BrandName,
		Commission:  req.Commission,
		Status:      models.ReviewRequestStatusOpen,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review request"})
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func CloseReviewRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	result := database.DB.Model(&models.ReviewRequest{}).
		Where("id = ? AND status != ?", requestID, models.ReviewRequestStatusClosed).
		Update("status", models.ReviewRequestStatusClosed)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close review request"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review request not found or already closed"})
	}

	return c.JSON(fiber.Map{"message": "Review request closed"})
}
