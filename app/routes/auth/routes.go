package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"scolapay/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	group := app.Group("/auth")

	// Public routes
	group.Post("/login", LoginAPI)
	group.Post("/logout", LogoutAPI)

	// Protected routes
	group.Use(AuthMiddleware)
	group.Get("/me", MeAPI)
	group.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the user context.
func AuthMiddleware(c *fiber.Ctx) error {
	// Token comes from a cookie or the Authorization header.
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
	}
	roles := make([]*models.Role, len(claims.Roles))
	for i, name := range claims.Roles {
		roles[i] = &models.Role{Name: name}
	}
	user.Roles = roles

	c.Locals("user_id", user.ID)
	c.Locals("user_roles", roles)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware checks if the user has one of the required roles.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles, ok := c.Locals("user_roles").([]*models.Role)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Insufficient permissions"})
		}

		for _, userRole := range userRoles {
			for _, allowed := range allowedRoles {
				if userRole.Name == allowed {
					return c.Next()
				}
			}
		}

		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Insufficient permissions"})
	}
}
