package middleware

import (
	"biryani_club/constants"
	"biryani_club/helper"
	"biryani_club/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// OptionalAuth resolves the customer when a valid token is present, but lets
// guests through with customerId 0.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			c.Locals("user", nil)
			c.Locals("customerId", uint(0))
			return c.Next()
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			c.Locals("customerId", uint(0))
			return c.Next()
		}

		c.Locals("user", jwtToken)

		claim, customer := helper.GetInfoCustomerFromToken(c)
		c.Locals("customerId", claim.CustomerId)
		if customer.ID > 0 {
			c.Locals("customer", &customer)
		}

		return c.Next()
	}
}

// AdminRequired sits behind Protected and checks the stored role, not the
// token claim, so a revoked admin loses access immediately.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, customer := helper.GetInfoCustomerFromToken(c)
		if customer.ID == 0 || customer.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}
		c.Locals("customer", &customer)
		return c.Next()
	}
}

func DeliveryRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, customer := helper.GetInfoCustomerFromToken(c)
		if customer.ID == 0 || (customer.Role != constants.ROLE_DELIVERY && customer.Role != constants.ROLE_ADMIN) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_DELIVERY, errors.New("not delivery staff"))
		}
		c.Locals("customer", &customer)
		return c.Next()
	}
}
