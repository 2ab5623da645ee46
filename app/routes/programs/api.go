package programs

import (
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/models"
)

var validate = validator.New()

type programPayload struct {
	InstitutionID string  `json:"institution_id" validate:"required,uuid"`
	Name          string  `json:"name" validate:"required,max=120"`
	Level         string  `json:"level"`
	TuitionFee    float64 `json:"tuition_fee" validate:"gte=0"`
	DurationYears int     `json:"duration_years" validate:"gte=0,lte=10"`
	IsActive      *bool   `json:"is_active"`
}

func GetProgramsAPI(c *fiber.Ctx) error {
	programs, err := database.GetPrograms(config.GetDB(), c.Query("institution_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch programs")
	}
	return c.JSON(fiber.Map{"success": true, "data": programs})
}

func GetProgramByIDAPI(c *fiber.Ctx) error {
	p, err := database.GetProgramByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch program")
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

func CreateProgramAPI(c *fiber.Ctx) error {
	var p programPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// The referenced institution must exist and be active.
	if _, err := database.GetInstitutionByID(config.GetDB(), p.InstitutionID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Institution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch institution")
	}

	program := &models.Program{
		InstitutionID: p.InstitutionID,
		Name:          p.Name,
		Level:         p.Level,
		TuitionFee:    p.TuitionFee,
		DurationYears: p.DurationYears,
		IsActive:      true,
	}
	if err := database.CreateProgram(config.GetDB(), program); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create program")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": program})
}

func UpdateProgramAPI(c *fiber.Ctx) error {
	existing, err := database.GetProgramByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch program")
	}

	var p programPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	existing.Name = p.Name
	existing.Level = p.Level
	existing.TuitionFee = p.TuitionFee
	existing.DurationYears = p.DurationYears
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.UpdateProgram(config.GetDB(), existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update program")
	}

	return c.JSON(fiber.Map{"success": true, "data": existing})
}

func DeleteProgramAPI(c *fiber.Ctx) error {
	if err := database.DeleteProgram(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete program")
	}
	return c.JSON(fiber.Map{"success": true})
}
