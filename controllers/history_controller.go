package controllers

import (
	"math"
	"strconv"

	"food-store/repositories"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	orderRepo *repositories.OrderRepository
}

func NewHistoryController() *HistoryController {
	return &HistoryController{orderRepo: repositories.NewOrderRepository()}
}

// GetOrders godoc
// @Summary Get order history
// @Description Get the signed-in customer's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *HistoryController) GetOrders(c *gin.Context) {
	userID := c.GetInt("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := ctrl.orderRepo.ListByUser(userID, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch order history"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order history retrieved",
		"data":    orders,
		"meta": gin.H{
			"page": page, "limit": limit, "total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
