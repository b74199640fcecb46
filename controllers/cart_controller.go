package controllers

import (
	"time"

	"food-store/cart"
	"food-store/config"
	"food-store/models"

	"github.com/gin-gonic/gin"
)

const cartSessionCookie = "cart_session"

type CartController struct {
	manager *cart.Manager
}

func NewCartController(manager *cart.Manager) *CartController {
	return &CartController{manager: manager}
}

// sessionStore resolves the caller's cart, minting a session cookie on first
// touch.
func sessionStore(c *gin.Context, manager *cart.Manager) *cart.Store {
	id, err := c.Cookie(cartSessionCookie)
	if err != nil || id == "" {
		id = manager.NewSessionID()
		c.SetCookie(cartSessionCookie, id, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
	}
	return manager.Get(id)
}

func (ctrl *CartController) sessionStore(c *gin.Context) *cart.Store {
	return sessionStore(c, ctrl.manager)
}

func cartPayload(store *cart.Store) gin.H {
	rate := cart.DefaultTaxRate
	if config.AppConfig != nil {
		rate = config.AppConfig.TaxRate
	}
	subtotal, tax, total := store.Totals(rate)
	return gin.H{
		"items":    store.Items(),
		"subtotal": subtotal.StringFixed(2),
		"tax":      tax.StringFixed(2),
		"total":    total.StringFixed(2),
	}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the session cart with derived totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	store := ctrl.sessionStore(c)
	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cartPayload(store)})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a menu item snapshot; adding the same item again bumps its quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Menu item snapshot"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	store := ctrl.sessionStore(c)
	store.Add(cart.Snapshot{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
	})

	c.JSON(200, gin.H{"success": true, "message": "Item added to cart", "data": cartPayload(store)})
}

// IncrementItem godoc
// @Summary Increment item quantity
// @Description Raise a line item's quantity by one; unknown IDs are a no-op
// @Tags Cart
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id}/increment [post]
func (ctrl *CartController) IncrementItem(c *gin.Context) {
	store := ctrl.sessionStore(c)
	store.Increment(c.Param("id"))
	c.JSON(200, gin.H{"success": true, "message": "Quantity updated", "data": cartPayload(store)})
}

// DecrementItem godoc
// @Summary Decrement item quantity
// @Description Lower a line item's quantity by one, never below one; unknown IDs are a no-op
// @Tags Cart
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id}/decrement [post]
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	store := ctrl.sessionStore(c)
	store.Decrement(c.Param("id"))
	c.JSON(200, gin.H{"success": true, "message": "Quantity updated", "data": cartPayload(store)})
}

// RemoveItem godoc
// @Summary Remove item from cart
// @Description Delete a line item entirely, whatever its quantity
// @Tags Cart
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	store := ctrl.sessionStore(c)
	store.Remove(c.Param("id"))
	c.JSON(200, gin.H{"success": true, "message": "Item removed", "data": cartPayload(store)})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Empty the session cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	store := ctrl.sessionStore(c)
	store.Clear()
	c.JSON(200, gin.H{"success": true, "message": "Cart cleared", "data": cartPayload(store)})
}
