package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutClearsCookies(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/logout", LogoutAPI)

	// Without a session_id cookie there is no session row to delete; the
	// handler still clears both auth cookies.
	req := httptest.NewRequest("POST", "/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	cleared := map[string]bool{}
	for _, cookie := range resp.Cookies() {
		if cookie.Value == "" {
			cleared[cookie.Name] = true
		}
	}
	assert.True(t, cleared["jwt_token"])
	assert.True(t, cleared["session_id"])
}
