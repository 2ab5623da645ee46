package institutions

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

type institutionPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

func GetInstitutionsAPI(c *fiber.Ctx) error {
	includeInactive := c.Query("status") == "all"
	institutions, err := database.GetInstitutions(config.GetDB(), includeInactive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch institutions")
	}
	return c.JSON(fiber.Map{"success": true, "data": institutions})
}

func GetInstitutionByIDAPI(c *fiber.Ctx) error {
	inst, err := database.GetInstitutionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Institution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch institution")
	}
	return c.JSON(fiber.Map{"success": true, "data": inst})
}

func CreateInstitutionAPI(c *fiber.Ctx) error {
	var p institutionPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inst := &models.Institution{
		Name:     p.Name,
		Address:  p.Address,
		City:     p.City,
		Phone:    p.Phone,
		Email:    p.Email,
		IsActive: true,
	}
	if err := database.CreateInstitution(config.GetDB(), inst); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create institution")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": inst})
}

func UpdateInstitutionAPI(c *fiber.Ctx) error {
	existing, err := database.GetInstitutionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Institution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch institution")
	}

	var p institutionPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	existing.Name = p.Name
	existing.Address = p.Address
	existing.City = p.City
	existing.Phone = p.Phone
	existing.Email = p.Email
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.UpdateInstitution(config.GetDB(), existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update institution")
	}

	return c.JSON(fiber.Map{"success": true, "data": existing})
}

func DeleteInstitutionAPI(c *fiber.Ctx) error {
	if err := database.DeleteInstitution(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Institution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete institution")
	}
	return c.JSON(fiber.Map{"success": true})
}
