package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/middlewares"
	"github.com/lashup/lashup-api/models"
	"github.com/lashup/lashup-api/services"
	"github.com/lashup/lashup-api/utils"
	"gorm.io/gorm"
)

const defaultShippingFee = 1000

// shippingFee is the flat fee added to every checkout.
func shippingFee() float64 {
	if raw := os.Getenv("SHIPPING_FEE"); raw != "" {
		if fee, err := strconv.ParseFloat(raw, 64); err == nil {
			return fee
		}
	}
	return defaultShippingFee
}

// newPaymentReference generates a checkout reference and retries on the
// unlikely collision with an existing order.
func newPaymentReference() (string, error) {
	for range 5 {
		reference := utils.GeneratePaymentReference()
		var count int64
		if err := initializers.DB.Model(&models.ProductOrder{}).
			Where("payment_reference = ?", reference).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return reference, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique payment reference")
}

// InitializePayment starts a checkout: it prices the line items against the
// current catalog, opens a provider transaction, and only then persists the
// orders. The provider call comes first so a rejected payment leaves no
// rows behind.
func InitializePayment(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var checkoutData struct {
		Items []struct {
			ProductID int `json:"productId" binding:"required"`
			Quantity  int `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"required,min=1,dive"`
		ShippingInfo struct {
			Name    string `json:"name" binding:"required"`
			Phone   string `json:"phone" binding:"required"`
			Address string `json:"address" binding:"required"`
			City    string `json:"city" binding:"required"`
		} `json:"shippingInfo" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Items and shipping information are required")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	// Resolve every product and snapshot its current price before anything
	// is written.
	products := make([]models.Product, 0, len(checkoutData.Items))
	totalAmount := shippingFee()
	for _, item := range checkoutData.Items {
		var product models.Product
		if err := initializers.DB.Where("id = ? AND is_active = ?", item.ProductID, true).First(&product).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			return
		}
		products = append(products, product)
		totalAmount += product.Price * float64(item.Quantity)
	}

	reference, err := newPaymentReference()
	if err != nil {
		log.Println("Payment reference error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	authorizationURL, err := services.Payment.Initialize(totalAmount, reference, user.Email)
	if err != nil {
		log.Println("Payment initialization error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initiate payment")
		return
	}

	orders := make([]models.ProductOrder, 0, len(checkoutData.Items))
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		for i, item := range checkoutData.Items {
			order := models.ProductOrder{
				UserID:           userID,
				ProductID:        item.ProductID,
				Quantity:         item.Quantity,
				UnitPrice:        products[i].Price,
				TotalAmount:      totalAmount,
				PaymentReference: reference,
				PaymentStatus:    models.PaymentPending,
				Status:           models.OrderPending,
				ShippingName:     checkoutData.ShippingInfo.Name,
				ShippingPhone:    checkoutData.ShippingInfo.Phone,
				ShippingAddress:  checkoutData.ShippingInfo.Address,
				ShippingCity:     checkoutData.ShippingInfo.City,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":          "Checkout initialized. Redirect user to payment.",
		"authorizationUrl": authorizationURL,
		"reference":        reference,
		"totalAmount":      totalAmount,
		"orders":           orders,
	})
}

// VerifyPayment settles every order sharing a payment reference according to
// the provider's current verdict. The provider is the source of truth, so
// this endpoint is safe to call any number of times: repeat calls re-derive
// the same terminal state and only the call that actually transitions rows
// sends notifications.
func VerifyPayment(ctx *gin.Context) {
	reference := ctx.Param("reference")

	var existing int64
	if err := initializers.DB.Model(&models.ProductOrder{}).
		Where("payment_reference = ?", reference).
		Count(&existing).Error; err != nil {
		log.Println("Order lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if existing == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "No orders found for this reference")
		return
	}

	verification, err := services.Payment.Verify(reference)
	if err != nil {
		log.Println("Payment verification error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to verify payment")
		return
	}

	var settledNow int64
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if verification.Settled {
			if err := tx.Model(&models.ProductOrder{}).
				Where("payment_reference = ? AND payment_status <> ?", reference, models.PaymentSuccessful).
				Update("payment_status", models.PaymentSuccessful).Error; err != nil {
				return err
			}
			// Only rows still awaiting fulfillment advance; a settled
			// reference re-verified later must not touch shipped or
			// cancelled siblings.
			result := tx.Model(&models.ProductOrder{}).
				Where("payment_reference = ? AND status = ?", reference, models.OrderPending).
				Update("status", models.OrderConfirmed)
			if result.Error != nil {
				return result.Error
			}
			settledNow = result.RowsAffected
			return nil
		}

		if err := tx.Model(&models.ProductOrder{}).
			Where("payment_reference = ? AND payment_status = ?", reference, models.PaymentPending).
			Update("payment_status", models.PaymentFailed).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProductOrder{}).
			Where("payment_reference = ? AND status = ?", reference, models.OrderPending).
			Update("status", models.OrderCancelled).Error
	})
	if err != nil {
		log.Println("Payment settlement error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	var orders []models.ProductOrder
	if err := initializers.DB.Preload("User").Preload("Product").
		Where("payment_reference = ?", reference).
		Find(&orders).Error; err != nil {
		log.Println("Order lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if !verification.Settled {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message":       "Payment was not successful",
			"paymentStatus": models.PaymentFailed,
			"orders":        orders,
		})
		return
	}

	if settledNow > 0 {
		buyer := orders[0].User
		var summary strings.Builder
		for _, order := range orders {
			fmt.Fprintf(&summary, "<li>%d × %s</li>", order.Quantity, order.Product.Name)
		}
		services.NotifyAsync(
			buyer.Email,
			"Order Confirmation",
			fmt.Sprintf("<h3>Thank you for your order, %s!</h3><p>Your payment of <b>%.2f</b> was received.</p><ul>%s</ul><p>We'll notify you once your order is processed and shipped.</p>", buyer.Name, verification.Amount, summary.String()),
		)
		services.NotifyAsync(
			services.AdminEmail(),
			"New Paid Order Received",
			fmt.Sprintf("<p><b>%s</b> (%s) paid <b>%.2f</b> for reference %s.</p><ul>%s</ul>", buyer.Name, buyer.Email, verification.Amount, reference, summary.String()),
		)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":       "Payment verified",
		"paymentStatus": models.PaymentSuccessful,
		"orders":        orders,
	})
}

func GetMyOrders(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var orders []models.ProductOrder
	if err := initializers.DB.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		log.Println("Order listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func GetAllOrders(ctx *gin.Context) {
	var orders []models.ProductOrder
	if err := initializers.DB.Preload("User").Preload("Product").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		log.Println("Order listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus is the admin fulfillment transition. Fulfillment never
// advances without a successful payment, user-cancelled orders are locked
// for good, and an admin cancellation can be reversed.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var statusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status is required")
		return
	}

	status := strings.ToUpper(strings.TrimSpace(statusData.Status))
	if !models.ValidOrderStatus(status) || status == models.OrderPending {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	var order models.ProductOrder
	if err := initializers.DB.Preload("User").Preload("Product").First(&order, orderID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if order.CancelledBy != nil && *order.CancelledBy == models.CancelledByUser {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cannot modify orders that were cancelled by the user")
		return
	}

	if status == models.OrderCancelled {
		cancelledBy := models.CancelledByAdmin
		order.CancelledBy = &cancelledBy
	} else {
		if order.PaymentStatus != models.PaymentSuccessful {
			sendErrorResponse(ctx, http.StatusBadRequest, "Payment has not been completed for this order")
			return
		}
		// Reassigning an admin-cancelled order to a live status reverses
		// the cancellation.
		order.CancelledBy = nil
	}

	order.Status = status
	if err := initializers.DB.Save(&order).Error; err != nil {
		log.Println("Order status update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var body string
	switch status {
	case models.OrderConfirmed:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your order for %d × <b>%s</b> has been confirmed.</p>", order.User.Name, order.Quantity, order.Product.Name)
	case models.OrderShipped:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your order for %d × <b>%s</b> is on its way!</p>", order.User.Name, order.Quantity, order.Product.Name)
	case models.OrderDelivered:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your order for %d × <b>%s</b> has been delivered. Enjoy!</p>", order.User.Name, order.Quantity, order.Product.Name)
	default:
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your order for %d × <b>%s</b> is now <b>%s</b>.</p>", order.User.Name, order.Quantity, order.Product.Name, status)
	}
	services.NotifyAsync(order.User.Email, "Order Status Updated", body)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// CancelOrder is the user-side cancellation. It marks the order as cancelled
// by the user, which permanently locks it against admin changes.
func CancelOrder(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.ProductOrder
	if err := initializers.DB.Preload("User").Preload("Product").First(&order, orderID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only cancel your own orders")
		return
	}

	switch order.Status {
	case models.OrderShipped, models.OrderDelivered, models.OrderCancelled:
		sendErrorResponse(ctx, http.StatusBadRequest, "This order cannot be cancelled")
		return
	}

	cancelledBy := models.CancelledByUser
	order.Status = models.OrderCancelled
	order.CancelledBy = &cancelledBy
	if err := initializers.DB.Save(&order).Error; err != nil {
		log.Println("Order cancellation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	services.NotifyAsync(
		order.User.Email,
		"Order Cancelled",
		fmt.Sprintf("<p>Hi %s,</p><p>Your order for <b>%d × %s</b> has been cancelled successfully.</p>", order.User.Name, order.Quantity, order.Product.Name),
	)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}
