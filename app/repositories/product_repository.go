package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apachemart/app/models"
	"apachemart/internal/schema"
	"apachemart/pkg/apperr"
	"apachemart/pkg/database"
	"apachemart/pkg/metrics"
)

// ProductRepository handles database operations for the catalogue.
type ProductRepository struct {
	mgr *database.Manager
}

func NewProductRepository(mgr *database.Manager) *ProductRepository {
	return &ProductRepository{mgr: mgr}
}

// GetProducts returns the full catalogue ordered by primary key.
func (r *ProductRepository) GetProducts() ([]*models.Product, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.ProductRow
	if err := r.mgr.DB().Order("id").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list products: %w", err))
	}

	products := make([]*models.Product, 0, len(rows))
	for _, row := range rows {
		p, err := productFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("repositories: map product %d: %w", row.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProductsByCategory returns catalogue entries in a category.
func (r *ProductRepository) GetProductsByCategory(category string) ([]*models.Product, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.ProductRow
	if err := r.mgr.DB().Where("category = ?", category).Order("id").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list products by category: %w", err))
	}

	products := make([]*models.Product, 0, len(rows))
	for _, row := range rows {
		p, err := productFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("repositories: map product %d: %w", row.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProductByID looks up one product. A missing id returns (nil, nil).
func (r *ProductRepository) GetProductByID(id uint) (*models.Product, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.ProductRow
	err := r.mgr.DB().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get product %d: %w", id, err))
	}
	return productFromRow(row)
}

// AddProduct inserts product and backfills its generated ID.
func (r *ProductRepository) AddProduct(product *models.Product) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("insert", time.Now())

	row := productToRow(product)
	if err := r.mgr.DB().Create(&row).Error; err != nil {
		return fail(r.mgr, fmt.Errorf("repositories: add product: %w", err))
	}
	product.ID = row.ID
	return nil
}

// UpdateProduct persists every field of product.
func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("update", time.Now())

	row := productToRow(product)
	res := r.mgr.DB().Model(&schema.ProductRow{}).Where("id = ?", row.ID).
		Select("*").Omit("id").Updates(row)
	if res.Error != nil {
		return fail(r.mgr, fmt.Errorf("repositories: update product %d: %w", row.ID, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", row.ID)
	}
	return nil
}

// UpdateStock sets the absolute stock level for a product.
func (r *ProductRepository) UpdateStock(id uint, stock int) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("update", time.Now())
	if stock < 0 {
		return apperr.Validation("stock", "stock cannot be negative")
	}

	res := r.mgr.DB().Model(&schema.ProductRow{}).Where("id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return fail(r.mgr, fmt.Errorf("repositories: update stock %d: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}

// DeleteProduct removes a product. Order items that reference it keep their
// name and price snapshots, so history survives catalogue removals.
func (r *ProductRepository) DeleteProduct(id uint) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("delete", time.Now())

	res := r.mgr.DB().Delete(&schema.ProductRow{}, id)
	if res.Error != nil {
		return fail(r.mgr, fmt.Errorf("repositories: delete product %d: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}
