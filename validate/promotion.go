package validate

import (
	"biryani_club/model"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		for _, field := range []struct {
			name, value string
		}{{"validFrom", input.ValidFrom}, {"validTo", input.ValidTo}} {
			if field.value == "" {
				continue
			}
			if _, err := time.Parse("2006-01-02", field.value); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Date must be YYYY-MM-DD",
					"field": field.name,
				})
			}
		}

		c.Locals("inputCreatePromotion", input)
		return c.Next()
	}
}

func ApplyPromo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ApplyPromoInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputApplyPromo", input)
		return c.Next()
	}
}
