package validate

import (
	"biryani_club/constants"
	"biryani_club/model"
	"biryani_club/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func PlaceOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PlaceOrderInput

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

		if !isValidPhone(input.CustomerPhone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phone number must be 10-15 digits",
				"field": "customerPhone",
			})
		}

		if !utils.IsValidValueOfConstant(input.PaymentMethod, constants.PaymentMethods) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown payment method",
				"field": "paymentMethod",
			})
		}

		c.Locals("inputPlaceOrder", input)
		return c.Next()
	}
}

func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput

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

		if !utils.IsValidValueOfConstant(input.Status, constants.OrderStatuses) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown order status",
				"field": "status",
			})
		}

		c.Locals("inputUpdateOrderStatus", input)
		return c.Next()
	}
}

func AssignDelivery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AssignDeliveryInput

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

		c.Locals("inputAssignDelivery", input)
		return c.Next()
	}
}

func SubmitRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SubmitRatingInput

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

		c.Locals("inputSubmitRating", input)
		return c.Next()
	}
}

func DeliveryAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.DeliveryActionInput

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

		c.Locals("inputDeliveryAction", input)
		return c.Next()
	}
}
