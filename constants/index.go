package constants

// Roles
const (
	ROLE_CUSTOMER = "CUSTOMER"
	ROLE_ADMIN    = "ADMIN"
	ROLE_DELIVERY = "DELIVERY"
)

// Order statuses
const (
	ORDER_PENDING   = "pending"
	ORDER_PREPARING = "preparing"
	ORDER_READY     = "ready"
	ORDER_DELIVERED = "delivered"
)

// Loyalty tiers
const (
	TIER_BRONZE = "bronze"
	TIER_SILVER = "silver"
	TIER_GOLD   = "gold"
)

// Promotion discount types
const (
	DISCOUNT_PERCENT = "percent"
	DISCOUNT_FIXED   = "fixed"
)

// Settings keys
const (
	SETTING_STORE_OPEN = "store_open"
)

// Payment methods
const (
	PAYMENT_COD  = "cod"
	PAYMENT_CARD = "card"
	PAYMENT_UPI  = "upi"
)

// Response messages
const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_CREATE             = "Create failed"
	MISSING_LOGIN_INPUT      = "Missing login input"
	INVALID_USERNAME         = "Invalid username"
	INVALID_PASSWORD         = "Invalid password"
	ACCOUNT_NOT_ACTIVE       = "Account is not active"
	NOT_ADMIN                = "Admin permission required"
	NOT_DELIVERY             = "Delivery permission required"
	CAN_NOT_HASH_PASSWORD    = "Can not hash password"
	DATA_INPUT_IS_NOT_NUMBER = "Input must be a number"
	STORE_CLOSED             = "Store is currently closed"
	ORDER_NOT_FOUND          = "Order not found"
	ITEM_NOT_FOUND           = "Menu item not found"
	PROMO_NOT_FOUND          = "Invalid promo code"
)

var OrderStatuses = []string{ORDER_PENDING, ORDER_PREPARING, ORDER_READY, ORDER_DELIVERED}

var PaymentMethods = []string{PAYMENT_COD, PAYMENT_CARD, PAYMENT_UPI}
