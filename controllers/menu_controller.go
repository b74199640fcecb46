package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"food-store/models"
	"food-store/repositories"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuController struct {
	menuRepo *repositories.MenuRepository
}

func NewMenuController() *MenuController {
	return &MenuController{menuRepo: repositories.NewMenuRepository()}
}

func getMenuCacheKey(page, limit int, category, search string) string {
	return fmt.Sprintf("menu_list_p%d_l%d_c%s_s%s", page, limit, category, search)
}

func invalidateMenuCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "menu_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// GetAllMenuItems godoc
// @Summary Get menu
// @Description Get paginated menu items, newest first
// @Tags Menu
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param category query string false "Filter by category"
// @Param search query string false "Search by name"
// @Success 200 {object} models.PaginationResponse
// @Router /menu [get]
func (ctrl *MenuController) GetAllMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	cacheKey := getMenuCacheKey(page, limit, category, search)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	items, total, err := ctrl.menuRepo.List(page, limit, category, search)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch menu items"})
		return
	}

	response := gin.H{
		"success": true, "message": "Menu items retrieved", "data": items,
		"meta": gin.H{
			"page": page, "limit": limit, "total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// GetMenuItemByID godoc
// @Summary Get menu item
// @Description Get a single menu item
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /menu/{id} [get]
func (ctrl *MenuController) GetMenuItemByID(c *gin.Context) {
	item, err := ctrl.menuRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Menu item not found"})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Menu item retrieved", "data": item})
}

func validateMenuFields(name, description, category string, price decimal.Decimal) string {
	if len(name) < 2 || len(name) > 100 {
		return "Name must be between 2 and 100 characters"
	}
	if len(description) > 500 {
		return "Description must be at most 500 characters"
	}
	if len(category) < 2 || len(category) > 100 {
		return "Select an appropriate category"
	}
	if price.LessThan(decimal.NewFromInt(1)) {
		return "Price must have a minimum value of 1"
	}
	return ""
}

// CreateMenuItem godoc
// @Summary Create menu item
// @Description Create a new menu item with an optional image (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param price formData number true "Price"
// @Param image formData file false "Item image"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/menu [post]
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := strings.TrimSpace(c.PostForm("category"))

	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	if msg := validateMenuFields(name, description, category, price); msg != "" {
		c.JSON(400, gin.H{"success": false, "message": msg})
		return
	}

	item := &models.MenuItem{
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
	}

	if file, err := c.FormFile("image"); err == nil {
		url, publicID, uploadErr := uploadMenuImage(c, file)
		if uploadErr != nil {
			c.JSON(400, gin.H{"success": false, "message": uploadErr.Error()})
			return
		}
		item.Image = &url
		item.CloudinaryID = &publicID
	}

	if err := ctrl.menuRepo.Create(item); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create menu item"})
		return
	}

	invalidateMenuCache()

	c.JSON(201, gin.H{"success": true, "message": "Menu item created successfully", "data": item})
}

// UpdateMenuItem godoc
// @Summary Update menu item
// @Description Update a menu item; absent fields keep their current values (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Menu item ID"
// @Param name formData string false "Name"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param price formData number false "Price"
// @Param image formData file false "Item image"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu/{id} [patch]
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	item, err := ctrl.menuRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	name := strings.TrimSpace(c.DefaultPostForm("name", item.Name))
	description := strings.TrimSpace(c.DefaultPostForm("description", item.Description))
	category := strings.TrimSpace(c.DefaultPostForm("category", item.Category))

	price := item.Price
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err = decimal.NewFromString(priceStr)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
			return
		}
	}

	if msg := validateMenuFields(name, description, category, price); msg != "" {
		c.JSON(400, gin.H{"success": false, "message": msg})
		return
	}

	item.Name = name
	item.Description = description
	item.Category = category
	item.Price = price

	if file, err := c.FormFile("image"); err == nil {
		url, publicID, uploadErr := uploadMenuImage(c, file)
		if uploadErr != nil {
			c.JSON(400, gin.H{"success": false, "message": uploadErr.Error()})
			return
		}
		if item.CloudinaryID != nil {
			destroyMenuImage(*item.CloudinaryID)
		}
		item.Image = &url
		item.CloudinaryID = &publicID
	}

	if err := ctrl.menuRepo.Update(item); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update menu item"})
		return
	}

	invalidateMenuCache()

	c.JSON(200, gin.H{"success": true, "message": "Menu item updated successfully", "data": item})
}

// DeleteMenuItem godoc
// @Summary Delete menu item
// @Description Delete a menu item and its hosted image (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu/{id} [delete]
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	item, err := ctrl.menuRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	if err := ctrl.menuRepo.Delete(item.ID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete menu item"})
		return
	}

	if item.CloudinaryID != nil {
		destroyMenuImage(*item.CloudinaryID)
	}

	invalidateMenuCache()

	c.JSON(200, gin.H{"success": true, "message": "Menu item deleted successfully"})
}
