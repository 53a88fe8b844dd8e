package model

import "time"

type Customer struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"fullName"`
	Phone    string `gorm:"not null" json:"phone"`

	LoyaltyPoints int    `gorm:"default:0" json:"loyaltyPoints"`
	LoyaltyTier   string `gorm:"default:'bronze'" json:"loyaltyTier"`

	Role      string     `gorm:"default:'CUSTOMER';not null" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	Username string `validate:"required,min=3" json:"username"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=6" json:"password"`
	FullName string `validate:"required,min=2" json:"fullName"`
	Phone    string `validate:"required" json:"phone"`
}

type EditCustomerInput struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Email    *string `validate:"omitempty,email" json:"email"`
}

type CustomerChangePassword struct {
	CurrentPassword string `validate:"required" json:"currentPassword"`
	NewPassword     string `validate:"required,min=6" json:"newPassword"`
	RepeatPassword  string `validate:"required" json:"repeatPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null" json:"customerId"`
	Token      string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
	Customer   Customer  `gorm:"foreignKey:CustomerId" json:"customer"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// AssignRoleInput replaces the legacy signup-password escalation. Roles are
// granted explicitly by an admin.
type AssignRoleInput struct {
	CustomerId uint   `validate:"required" json:"customerId"`
	Role       string `validate:"required" json:"role"`
}
