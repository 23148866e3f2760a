// Package repository stores catalog entities through gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beststore/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the persistence the catalog handlers depend on.
type ProductRepository interface {
	FindAllSorted(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, p *models.Product) error
}

type GormProducts struct {
	db *gorm.DB
}

func NewProducts(db *gorm.DB) *GormProducts {
	return &GormProducts{db: db}
}

// FindAllSorted returns every product, newest id first.
func (r *GormProducts) FindAllSorted(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.db.WithContext(ctx).Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (r *GormProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("id %d: %w", id, ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &p, nil
}

// Save inserts p when it has no id yet and updates every column otherwise.
func (r *GormProducts) Save(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (r *GormProducts) Delete(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, p.ID)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("id %d: %w", p.ID, ErrProductNotFound)
	}
	return nil
}
