package students

import (
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"scolapay/app/config"
	"scolapay/app/database"
	"scolapay/app/models"
)

var validate = validator.New()

type studentPayload struct {
	Matricule     string  `json:"matricule" validate:"required,max=30"`
	FirstName     string  `json:"first_name" validate:"required,max=80"`
	LastName      string  `json:"last_name" validate:"required,max=80"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate     string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone         string  `json:"phone" validate:"omitempty,max=20"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Address       string  `json:"address"`
	InstitutionID string  `json:"institution_id" validate:"required,uuid"`
	ProgramID     *string `json:"program_id" validate:"omitempty,uuid"`
	AcademicYear  string  `json:"academic_year"`
	IsActive      *bool   `json:"is_active"`
}

func (p *studentPayload) normalize() {
	p.Matricule = strings.TrimSpace(p.Matricule)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.Address = strings.TrimSpace(p.Address)
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
}

// parseGender maps the payload value onto the known gender constants;
// anything else stays empty.
func parseGender(s string) models.Gender {
	switch g := models.Gender(s); g {
	case models.Male, models.Female, models.Other:
		return g
	}
	return ""
}

func (p *studentPayload) toModel() *models.Student {
	s := &models.Student{
		Matricule:     p.Matricule,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Gender:        parseGender(p.Gender),
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		InstitutionID: p.InstitutionID,
		ProgramID:     p.ProgramID,
		AcademicYear:  p.AcademicYear,
		IsActive:      true,
	}
	if p.BirthDate != "" {
		if b, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			s.BirthDate = &b
		}
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}

// GetStudentsAPI returns students with optional filtering.
func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:        c.Query("q"),
		InstitutionID: c.Query("institution_id"),
		ProgramID:     c.Query("program_id"),
		AcademicYear:  c.Query("academic_year"),
		Status:        c.Query("status"),
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
	}
	if filters.Limit > 200 {
		filters.Limit = 200
	}

	students, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{"success": true, "data": students})
}

func GetStudentsStatsAPI(c *fiber.Ctx) error {
	total, active, err := database.GetStudentStats(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch stats")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"total": total, "active": active, "inactive": total - active},
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var p studentPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := p.toModel()
	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		if strings.Contains(err.Error(), "students_matricule_key") {
			return fiber.NewError(fiber.StatusConflict, "Matricule already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	existing, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var p studentPayload
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := p.toModel()
	student.ID = existing.ID
	if p.IsActive == nil {
		student.IsActive = existing.IsActive
	}
	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{"success": true, "data": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	return c.JSON(fiber.Map{"success": true})
}
