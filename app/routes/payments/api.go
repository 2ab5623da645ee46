package payments

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/models"
	"scolapay/app/services"
)

var validate = validator.New()

// paymentPayload matches the frontend's camelCase payment form.
type paymentPayload struct {
	StudentID  string  `json:"studentId" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	ValidFrom  string  `json:"validFrom" validate:"required"`
	ValidUntil string  `json:"validUntil" validate:"required"`
	Currency   string  `json:"currency" validate:"omitempty,len=3"`
	Reference  string  `json:"reference"`
	Details    string  `json:"details"`
	Status     string  `json:"status" validate:"omitempty,oneof=PENDING VALID"`
}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// CreatePaymentAPI records a payment and issues or refreshes the student's
// access card in the same request.
func CreatePaymentAPI(c *fiber.Ctx) error {
	var p paymentPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	validFrom, err := parseDate(p.ValidFrom)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "validFrom must be an ISO date")
	}
	validUntil, err := parseDate(p.ValidUntil)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "validUntil must be an ISO date")
	}
	if !validUntil.After(validFrom) {
		return fiber.NewError(fiber.StatusBadRequest, "validUntil must be after validFrom")
	}

	db := config.GetDB()

	if _, err := database.GetStudentByID(db, p.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	status := models.PaymentPending
	if p.Status != "" {
		status = models.PaymentStatus(p.Status)
	}
	currency := p.Currency
	if currency == "" {
		currency = "XOF"
	}
	reference := p.Reference
	if reference == "" {
		reference = fmt.Sprintf("PAY-%d", time.Now().Unix())
	}

	payment := &models.Payment{
		StudentID:  p.StudentID,
		Amount:     p.Amount,
		Currency:   currency,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Status:     status,
		Reference:  reference,
		Details:    p.Details,
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		payment.RecordedBy = &userID
	}

	if err := database.CreatePayment(db, payment); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment")
	}

	card, summary, err := services.IssueOrRefreshCard(db, config.AppConfig.FrontendURL, payment)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue access card")
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"payment":    payment,
		"accessCard": card,
		"summary":    summary,
	})
}

// GetPaymentsAPI lists a student's payments, newest first.
func GetPaymentsAPI(c *fiber.Ctx) error {
	studentID := c.Query("studentId")
	if studentID == "" {
		studentID = c.Query("student_id")
	}
	if studentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "studentId is required")
	}

	payments, err := database.GetPaymentsByStudent(config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{"success": true, "payments": payments})
}

// UpdatePaymentStatusAPI moves a payment between PENDING, VALID and EXPIRED.
// CANCELLED rows are immutable.
func UpdatePaymentStatusAPI(c *fiber.Ctx) error {
	type statusPayload struct {
		Status string `json:"status" validate:"required"`
	}

	var p statusPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !models.IsValidStatus(p.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown payment status")
	}
	if p.Status == string(models.PaymentCancelled) {
		return fiber.NewError(fiber.StatusBadRequest, "Use the cancel endpoint to cancel a payment")
	}

	db := config.GetDB()
	paymentID := c.Params("paymentId")

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if payment.Status == models.PaymentCancelled {
		return fiber.NewError(fiber.StatusConflict, "Payment is cancelled and cannot be modified")
	}

	if err := database.UpdatePaymentStatus(db, paymentID, models.PaymentStatus(p.Status)); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusConflict, "Payment is cancelled and cannot be modified")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment")
	}

	payment.Status = models.PaymentStatus(p.Status)
	return c.JSON(fiber.Map{"success": true, "payment": payment})
}

// CancelPaymentAPI moves a payment to its terminal CANCELLED state.
func CancelPaymentAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	paymentID := c.Params("paymentId")

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}
	if payment.Status == models.PaymentCancelled {
		return c.JSON(fiber.Map{"success": true, "payment": payment})
	}

	if err := database.UpdatePaymentStatus(db, paymentID, models.PaymentCancelled); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel payment")
	}

	payment.Status = models.PaymentCancelled
	return c.JSON(fiber.Map{"success": true, "payment": payment})
}
