package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/customers/:customerId", GetById("customerId"), func(c *fiber.Ctx) error {
		id, _ := c.Locals("inputId").(int)
		return c.JSON(fiber.Map{"id": id})
	})

	cases := []struct {
		path   string
		status int
	}{
		{"/customers/5", fiber.StatusOK},
		{"/customers/abc", fiber.StatusBadRequest},
		{"/customers/0", fiber.StatusBadRequest},
		{"/customers/-3", fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
	}
}

func TestDelete(t *testing.T) {
	app := fiber.New()
	app.Delete("/menu", Delete(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		body   string
		status int
	}{
		{`{"ids":[1,2,3]}`, fiber.StatusOK},
		{`{"ids":[]}`, fiber.StatusBadRequest},
		{`not json`, fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("DELETE", "/menu", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.body)
	}
}
