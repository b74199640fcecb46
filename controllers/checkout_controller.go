package controllers

import (
	"errors"

	"food-store/cart"
	"food-store/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	manager  *cart.Manager
	checkout *services.CheckoutService
}

func NewCheckoutController(manager *cart.Manager) *CheckoutController {
	return &CheckoutController{
		manager:  manager,
		checkout: services.NewCheckoutService(),
	}
}

// Checkout godoc
// @Summary Create checkout session
// @Description Hand the cart snapshot to the payment provider and get a redirect URL
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	store := sessionStore(c, ctrl.manager)

	url, err := ctrl.checkout.CreateSession(userID, store.Items())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, services.ErrNotConfigured):
			c.JSON(500, gin.H{"success": false, "message": "Payment configuration error"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to create checkout session"})
		}
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Checkout session created", "data": gin.H{"url": url}})
}

// CompleteCheckout godoc
// @Summary Complete checkout
// @Description Clear the session cart after the provider's success redirect. The
// authoritative payment confirmation still arrives via the webhook; this only
// resets the storefront cart, and calling it again is harmless.
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/complete [post]
func (ctrl *CheckoutController) CompleteCheckout(c *gin.Context) {
	store := sessionStore(c, ctrl.manager)
	store.Clear()
	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}
