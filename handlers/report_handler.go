package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

var csvBOM = []byte{0xEF, 0xBB, 0xBF}

func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format, use YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format, use YYYY-MM-DD")
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return startDate, endDate, nil
}

func sendCSV(c *fiber.Ctx, name string, start, end time.Time, b *bytes.Buffer) error {
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s_to_%s.csv\"", name, start.Format("2006-01-02"), end.Format("2006-01-02")))
	return c.Send(b.Bytes())
}

func GenerateTaskReport(c *fiber.Ctx) error {
	startDate, endDate, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tasks []models.Task
	database.DB.
		Preload("User").
		Preload("Seller").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at desc").
		Find(&tasks)

	b := new(bytes.Buffer)
	b.Write(csvBOM)
	w := csv.NewWriter(b)

	headers := []string{"Task ID", "Date", "Assignee", "Seller", "Brand", "Commission", "Status", "Priority"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range tasks {
		row := []string{
			t.ID.String(),
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.User.FullName,
			t.Seller.Name,
			t.BrandName,
			fmt.Sprintf("%.2f", t.Commission),
			t.Status,
			t.Priority,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	return sendCSV(c, "tasks", startDate, endDate, b)
}

func GenerateWithdrawalReport(c *fiber.Ctx) error {
	startDate, endDate, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var requests []models.WithdrawalRequest
	database.DB.
		Preload("User").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at desc").
		Find(&requests)

	b := new(bytes.Buffer)
	b.Write(csvBOM)
	w := csv.NewWriter(b)

	headers := []string{"Request ID", "Date", "User", "Amount", "Method", "Status", "Processed At"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, r := range requests {
		processedAt := ""
		if r.ProcessedAt != nil {
			processedAt = r.ProcessedAt.Format("2006-01-02 15:04")
		}
		row := []string{
			r.ID.String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.User.FullName,
			fmt.Sprintf("%.2f", r.Amount),
			r.PaymentMethod,
			r.Status,
			processedAt,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	return sendCSV(c, "withdrawals", startDate, endDate, b)
}

func GenerateLedgerReport(c *fiber.Ctx) error {
	startDate, endDate, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var transactions []models.WalletTransaction
	query := database.DB.Where("created_at BETWEEN ? AND ?", startDate, endDate)
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	query.Order("created_at desc").Find(&transactions)

	b := new(bytes.Buffer)
	b.Write(csvBOM)
	w := csv.NewWriter(b)

	headers := []string{"Transaction ID", "Date", "User ID", "Type", "Amount", "Balance After", "Status", "Description"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range transactions {
		row := []string{
			t.ID.String(),
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.UserID.String(),
			t.Type,
			fmt.Sprintf("%.2f", t.Amount),
			fmt.Sprintf("%.2f", t.BalanceAfter),
			t.Status,
			t.Description,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	return sendCSV(c, "wallet_ledger", startDate, endDate, b)
}

type GSTReportTransaction struct {
	TransactionID string `json:"transaction_id"`
	Date          string `json:"date"`
	UserID        string `json:"user_id"`
	Description   string `json:"description"`
	TaxableAmount string `json:"taxable_amount"`
	GSTAmount     string `json:"gst_amount"`
	TotalAmount   string `json:"total_amount"`
}

type GSTReportResponse struct {
	RatePercent  float64                `json:"rate_percent"`
	TotalTaxable string                 `json:"total_taxable"`
	TotalGST     string                 `json:"total_gst"`
	TotalAmount  string                 `json:"total_amount"`
	Transactions []GSTReportTransaction `json:"transactions"`
}

// GenerateGSTReport splits every commission payout in the range into taxable
// and GST portions at the configured rate. Decimal arithmetic keeps the
// summary totals equal to the sum of the per-row splits.
func GenerateGSTReport(c *fiber.Ctx) error {
	startDate, endDate, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var gst models.GSTSetting
	if err := database.DB.Where("is_active = ?", true).Order("created_at desc").First(&gst).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No active GST configuration"})
	}

	var transactions []models.WalletTransaction
	database.DB.
		Where("type IN ? AND created_at BETWEEN ? AND ?", []string{models.TxnTypeCredit, models.TxnTypeReferral, models.TxnTypeBonus}, startDate, endDate).
		Order("created_at desc").
		Find(&transactions)

	rate := decimal.NewFromFloat(gst.RatePercent).Div(decimal.NewFromInt(100))
	divisor := decimal.NewFromInt(1).Add(rate)

	totalTaxable := decimal.Zero
	totalGST := decimal.Zero
	totalAmount := decimal.Zero

	report := GSTReportResponse{
		RatePercent:  gst.RatePercent,
		Transactions: make([]GSTReportTransaction, 0, len(transactions)),
	}

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		taxable := amount.Div(divisor).Round(2)
		gstPart := amount.Sub(taxable)

		totalTaxable = totalTaxable.Add(taxable)
		totalGST = totalGST.Add(gstPart)
		totalAmount = totalAmount.Add(amount)

		report.Transactions = append(report.Transactions, GSTReportTransaction{
			TransactionID: t.ID.String(),
			Date:          t.CreatedAt.Format("2006-01-02"),
			UserID:        t.UserID.String(),
			Description:   t.Description,
			TaxableAmount: taxable.StringFixed(2),
			GSTAmount:     gstPart.StringFixed(2),
			TotalAmount:   amount.StringFixed(2),
		})
	}

	report.TotalTaxable = totalTaxable.StringFixed(2)
	report.TotalGST = totalGST.StringFixed(2)
	report.TotalAmount = totalAmount.StringFixed(2)

	return c.JSON(report)
}
