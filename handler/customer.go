package handler

import (
	"biryani_club/config"
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/model"
	"biryani_club/utils"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jordan-wright/email"
	"gorm.io/gorm"
)

func GetProfile(c *fiber.Ctx) error {
	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func EditProfile(c *fiber.Ctx) error {
	db := database.DB

	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	input, ok := c.Locals("inputEditCustomer").(model.EditCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		var other model.Customer
		err := db.Where("email = ? AND id <> ?", *input.Email, customer.ID).First(&other).Error
		if err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email already registered", nil, "email")
		}
		updates["email"] = *input.Email
	}

	if len(updates) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, customer)
	}

	if err := db.Model(&customer).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func ChangePassword(c *fiber.Ctx) error {
	db := database.DB

	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	input, ok := c.Locals("inputChangePasswordCustomer").(model.CustomerChangePassword)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, customer.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, "Current password is incorrect", nil, "currentPassword")
	}

	if input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Passwords do not match", nil, "repeatPassword")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Password changed"})
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("EmailForgotPassword").(model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Always answer 200 so the endpoint cannot be used to probe which
	// emails have accounts.
	if customer == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "If that email exists, a reset link was sent"})
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token := hex.EncodeToString(raw)

	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(30 * time.Minute),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	go sendPasswordResetEmail(customer.Email, token)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "If that email exists, a reset link was sent"})
}

func sendPasswordResetEmail(to, token string) {
	host := config.Config("SMTP_HOST")
	port := config.Config("SMTP_PORT")
	user := config.Config("SMTP_USER")
	pass := config.Config("SMTP_PASSWORD")
	baseUrl := config.Config("FRONTEND_URL")

	e := email.NewEmail()
	e.From = fmt.Sprintf("Biryani Club <%s>", user)
	e.To = []string{to}
	e.Subject = "Reset your Biryani Club password"
	e.HTML = []byte(fmt.Sprintf(`
		<p>We received a request to reset your password.</p>
		<p><a href="%s/reset-password?token=%s">Click here to choose a new one.</a></p>
		<p>The link expires in 30 minutes. If you did not ask for this, ignore this email.</p>
	`, baseUrl, token))

	if err := e.Send(host+":"+port, smtp.PlainAuth("", user, pass, host)); err != nil {
		log.Printf("send reset email failed: to=%s err=%v", to, err)
	}
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ?", input.Token).First(&resetToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired reset token", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if time.Now().After(resetToken.ExpiresAt) {
		db.Delete(&resetToken)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired reset token", nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&model.Customer{}).Where("id = ?", resetToken.CustomerId).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	db.Delete(&resetToken)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Password has been reset"})
}

// AssignRole lets an admin grant or revoke staff roles. Self demotion is
// rejected so the store always keeps at least the acting admin.
func AssignRole(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputAssignRole").(model.AssignRoleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	if !utils.IsValidValueOfConstant(input.Role, []string{constants.ROLE_CUSTOMER, constants.ROLE_ADMIN, constants.ROLE_DELIVERY}) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Unknown role", nil, "role")
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == input.CustomerId && input.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot remove your own admin role", nil)
	}

	var target model.Customer
	if err := db.First(&target, input.CustomerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Account not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Model(&target).Update("role", input.Role).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, target)
}

func GetCustomerById(c *fiber.Ctx) error {
	db := database.DB

	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var customer model.Customer
	if err := db.First(&customer, customerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Account not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var orderCount int64
	var totalSpent float64
	db.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&orderCount)
	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE customer_id = ?
    `, customer.ID).Scan(&totalSpent)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer":   customer,
		"orderCount": orderCount,
		"totalSpent": totalSpent,
	})
}

func GetCustomers(c *fiber.Ctx) error {
	db := database.DB

	var customers model.Customers
	query := db.Order("created_at desc")

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 1)
	query = utils.ApplyPagination(query, &limit, &page)

	if err := query.Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customers)
}
