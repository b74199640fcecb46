package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"food-store/models"
)

type MenuRepository struct{}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

func (r *MenuRepository) List(page, limit int, category, search string) ([]models.MenuItem, int, error) {
	offset := (page - 1) * limit

	whereConditions := []string{"1=1"}
	args := []interface{}{}
	paramIndex := 1

	if category != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", paramIndex))
		args = append(args, category)
		paramIndex++
	}

	if search != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("LOWER(name) LIKE LOWER($%d)", paramIndex))
		args = append(args, "%"+search+"%")
		paramIndex++
	}

	whereClause := strings.Join(whereConditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM menu_items WHERE %s", whereClause)
	if err := models.DB.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, category, price, image, cloudinary_id, created_at, updated_at
		FROM menu_items
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price,
			&m.Image, &m.CloudinaryID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *MenuRepository) GetByID(id string) (*models.MenuItem, error) {
	query := `SELECT id, name, description, category, price, image, cloudinary_id, created_at, updated_at
	          FROM menu_items WHERE id = $1`

	var m models.MenuItem
	err := models.DB.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Category, &m.Price,
		&m.Image, &m.CloudinaryID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Create(item *models.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, category, price, image, cloudinary_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return models.DB.QueryRow(context.Background(), query,
		item.Name, item.Description, item.Category, item.Price, item.Image, item.CloudinaryID, now, now,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *MenuRepository) Update(item *models.MenuItem) error {
	query := `UPDATE menu_items SET name = $1, description = $2, category = $3, price = $4,
	          image = $5, cloudinary_id = $6, updated_at = $7 WHERE id = $8`
	_, err := models.DB.Exec(context.Background(), query,
		item.Name, item.Description, item.Category, item.Price,
		item.Image, item.CloudinaryID, time.Now(), item.ID,
	)
	return err
}

func (r *MenuRepository) Delete(id string) error {
	_, err := models.DB.Exec(context.Background(), `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}
