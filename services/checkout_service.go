package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"food-store/cart"
	"food-store/config"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotConfigured    = errors.New("payment provider not configured")
	ErrProviderRejected = errors.New("payment provider rejected the session")
)

// CheckoutService turns a cart snapshot into a hosted payment session. The
// cart itself never talks to the provider; it only hands over its items.
type CheckoutService struct{}

func NewCheckoutService() *CheckoutService {
	stripe.Key = config.AppConfig.StripeSecretKey
	return &CheckoutService{}
}

// CreateSession creates the provider checkout session and returns the
// redirect URL the storefront sends the customer to.
func (s *CheckoutService) CreateSession(userID int, items []cart.Item) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	if config.AppConfig.StripeSecretKey == "" {
		return "", ErrNotConfigured
	}

	baseURL := config.AppConfig.BaseURL

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          BuildLineItems(items),
		SuccessURL:         stripe.String(baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(baseURL + "/cart"),
	}
	params.AddMetadata("user_id", strconv.Itoa(userID))

	metadata, err := MetadataItems(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart metadata: %w", err)
	}
	params.AddMetadata("cart_items", metadata)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}
	return sess.URL, nil
}

// BuildLineItems maps cart lines to provider line items. The provider wants
// unit amounts in cents.
func BuildLineItems(items []cart.Item) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(it.Name),
		}
		if it.Description != "" {
			productData.Description = stripe.String(it.Description)
		}
		if it.Image != "" {
			productData.Images = stripe.StringSlice([]string{it.Image})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("usd"),
				ProductData: productData,
				UnitAmount:  stripe.Int64(ToCents(it.Price)),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}
	return lineItems
}

// ToCents converts a decimal dollar amount to whole cents, rounding halves up.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// metadataItem is the compact per-line record stashed in the session metadata
// so the payment webhook can rebuild the order without another lookup.
type metadataItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// MetadataItems serializes the compact cart representation for the session
// metadata. Providers cap metadata values, hence only the fields the webhook
// needs.
func MetadataItems(items []cart.Item) (string, error) {
	compact := make([]metadataItem, 0, len(items))
	for _, it := range items {
		compact = append(compact, metadataItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	data, err := json.Marshal(compact)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MetadataLine mirrors metadataItem for decoding on the webhook side.
type MetadataLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ParseMetadataItems decodes the cart_items metadata written by CreateSession.
func ParseMetadataItems(raw string) ([]MetadataLine, error) {
	var lines []MetadataLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("invalid cart_items metadata: %w", err)
	}
	return lines, nil
}
