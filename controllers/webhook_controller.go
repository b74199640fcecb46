package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"food-store/config"
	"food-store/models"
	"food-store/repositories"
	"food-store/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

type WebhookController struct {
	orderRepo *repositories.OrderRepository
	userRepo  *repositories.UserRepository
}

func NewWebhookController() *WebhookController {
	return &WebhookController{
		orderRepo: repositories.NewOrderRepository(),
		userRepo:  repositories.NewUserRepository(),
	}
}

// Probe godoc
// @Summary Webhook probe
// @Description Reachability check echoing configuration presence
// @Tags Webhook
// @Produce json
// @Success 200 {object} models.Response
// @Router /webhook/stripe [get]
func (ctrl *WebhookController) Probe(c *gin.Context) {
	c.JSON(200, gin.H{
		"message":   "Webhook endpoint is accessible",
		"timestamp": time.Now().Format(time.RFC3339),
		"environment": gin.H{
			"hasStripeSecret":  config.AppConfig.StripeSecretKey != "",
			"hasWebhookSecret": config.AppConfig.StripeWebhookSecret != "",
			"env":              config.AppConfig.AppEnv,
		},
	})
}

// HandleStripe godoc
// @Summary Stripe webhook
// @Description Verify the event signature and record completed checkouts as orders
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /webhook/stripe [post]
func (ctrl *WebhookController) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(400, gin.H{"success": false, "message": "Missing Stripe signature"})
		return
	}

	secret := config.AppConfig.StripeWebhookSecret
	if secret == "" {
		log.Println("Missing STRIPE_WEBHOOK_SECRET environment variable")
		c.JSON(500, gin.H{"success": false, "message": "Missing webhook secret"})
		return
	}

	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.JSON(400, gin.H{"success": false, "message": "Invalid Stripe signature"})
		return
	}

	if event.Type == "checkout.session.completed" {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Malformed event payload"})
			return
		}

		if err := ctrl.recordOrder(&sess); err != nil {
			log.Printf("Webhook error: %v", err)
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	c.JSON(200, gin.H{"success": true, "message": "Webhook received"})
}

func (ctrl *WebhookController) recordOrder(sess *stripe.CheckoutSession) error {
	rawUser := sess.Metadata["user_id"]
	rawItems := sess.Metadata["cart_items"]
	if rawUser == "" || rawItems == "" {
		return fmt.Errorf("missing required metadata")
	}

	userID, err := strconv.Atoi(rawUser)
	if err != nil {
		return fmt.Errorf("invalid user_id metadata")
	}

	metaLines, err := services.ParseMetadataItems(rawItems)
	if err != nil {
		return err
	}

	lines := make([]repositories.OrderLine, 0, len(metaLines))
	for _, l := range metaLines {
		lines = append(lines, repositories.OrderLine{
			MenuItemID: l.ID,
			Quantity:   l.Quantity,
			UnitPrice:  l.Price,
		})
	}

	amount := decimal.NewFromInt(sess.AmountTotal).Div(decimal.NewFromInt(100))

	paymentIntentID := ""
	if sess.PaymentIntent != nil {
		paymentIntentID = sess.PaymentIntent.ID
	}

	orderNumber := fmt.Sprintf("ORD-%d", time.Now().Unix())

	order, err := ctrl.orderRepo.Create(userID, orderNumber, paymentIntentID, amount, lines)
	if err != nil {
		return err
	}

	log.Printf("Order %s created successfully for user %d", order.OrderNumber, userID)

	ctrl.sendConfirmation(userID, order)
	return nil
}

// sendConfirmation is best effort: a paid order must not bounce because the
// mail relay is down.
func (ctrl *WebhookController) sendConfirmation(userID int, order *models.Order) {
	user, err := ctrl.userRepo.FindByID(userID)
	if err != nil {
		log.Printf("Skipping confirmation email, user %d not found: %v", userID, err)
		return
	}

	emailSvc, err := models.NewEmailService()
	if err != nil {
		log.Printf("Skipping confirmation email: %v", err)
		return
	}

	if err := emailSvc.SendOrderConfirmationEmail(user.Email, order.OrderNumber, order.Amount); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
	}
}
