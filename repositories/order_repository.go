package repositories

import (
	"context"
	"fmt"
	"time"

	"food-store/models"

	"github.com/shopspring/decimal"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// OrderLine is one paid line item as reported by the payment confirmation.
type OrderLine struct {
	MenuItemID string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// Create writes the order and its items in one transaction so a half-written
// order never becomes visible in history.
func (r *OrderRepository) Create(userID int, orderNumber, paymentIntentID string, amount decimal.Decimal, lines []OrderLine) (*models.Order, error) {
	ctx := context.Background()

	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	order := &models.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		Amount:          amount,
		PaymentIntentID: paymentIntentID,
		Status:          "paid",
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, amount, payment_intent_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.UserID, order.Amount, order.PaymentIntentID, order.Status, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range lines {
		item := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(userID, page, limit int) ([]models.Order, int, error) {
	ctx := context.Background()
	offset := (page - 1) * limit

	var total int
	if err := models.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := models.DB.Query(ctx,
		`SELECT id, order_number, user_id, amount, COALESCE(payment_intent_id, ''), status, created_at, updated_at
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []int{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Amount,
			&o.PaymentIntentID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, total, nil
	}

	itemRows, err := models.DB.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.menu_item_id, COALESCE(m.name, ''), oi.quantity, oi.unit_price
		 FROM order_items oi
		 LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		 WHERE oi.order_id = ANY($1)
		 ORDER BY oi.id`,
		ids)
	if err != nil {
		return nil, 0, err
	}
	defer itemRows.Close()

	byOrder := map[int][]models.OrderItem{}
	for itemRows.Next() {
		var it models.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.MenuItemID,
			&it.MenuItemName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, 0, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, total, nil
}
