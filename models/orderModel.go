package models

import "gorm.io/gorm"

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"

	PaymentPending    = "PENDING"
	PaymentSuccessful = "SUCCESSFUL"
	PaymentFailed     = "FAILED"

	CancelledByUser  = "USER"
	CancelledByAdmin = "ADMIN"
)

// ValidOrderStatus reports whether status is a recognized order status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ProductOrder is one checkout line item. Orders created in the same checkout
// share a PaymentReference and settle together when the payment is verified.
type ProductOrder struct {
	gorm.Model
	UserID           int     `json:"userId"`
	ProductID        int     `json:"productId"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	TotalAmount      float64 `json:"totalAmount"`
	PaymentReference string  `json:"paymentReference" gorm:"index"`
	PaymentStatus    string  `json:"paymentStatus" gorm:"default:PENDING"`
	Status           string  `json:"status" gorm:"default:PENDING"`
	CancelledBy      *string `json:"cancelledBy"`
	ShippingName     string  `json:"shippingName"`
	ShippingPhone    string  `json:"shippingPhone"`
	ShippingAddress  string  `json:"shippingAddress"`
	ShippingCity     string  `json:"shippingCity"`
	User             User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product          Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
