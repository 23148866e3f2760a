// Package catalog implements the admin operations on products: listing,
// creating, editing and deleting, each product owning one stored image.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"beststore/internal/models"
	"beststore/internal/repository"
	"beststore/internal/storage"
)

// Service ties the product repository to the image store.
type Service struct {
	products repository.ProductRepository
	images   *storage.ImageStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(products repository.ProductRepository, images *storage.ImageStore, log zerolog.Logger) *Service {
	return &Service{
		products: products,
		images:   images,
		log:      log,
		now:      time.Now,
	}
}

// logger prefers the request logger carried by ctx.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAllSorted(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create stores the uploaded image and persists a new product pointing at it.
// The form must have passed Validate with an image attached.
func (s *Service) Create(ctx context.Context, form *ProductForm) (*models.Product, error) {
	if !form.HasImage() {
		return nil, fmt.Errorf("create product: %w", storage.ErrInvalidImage)
	}

	createdAt := s.now()
	name, err := s.storeImage(form, createdAt)
	if err != nil {
		return nil, err
	}

	p := &models.Product{ImageFileName: name}
	p.CreatedAt = createdAt
	if err := form.ApplyTo(p); err != nil {
		s.discardImage(ctx, name)
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		s.discardImage(ctx, name)
		return nil, err
	}

	s.logger(ctx).Info().Uint("product_id", p.ID).Str("image", name).Msg("product created")
	return p, nil
}

// Update copies the form onto p and saves it. With a new upload the image is
// replaced: the new file is written first, the old one removed once the row
// points at the new name. Removal failures are logged only.
func (s *Service) Update(ctx context.Context, p *models.Product, form *ProductForm) error {
	oldImage := p.ImageFileName
	newImage := ""

	if form.HasImage() {
		name, err := s.storeImage(form, s.now())
		if err != nil {
			return err
		}
		newImage = name
	}

	if err := form.ApplyTo(p); err != nil {
		s.discardImage(ctx, newImage)
		return err
	}
	if newImage != "" {
		p.ImageFileName = newImage
	}

	if err := s.products.Save(ctx, p); err != nil {
		p.ImageFileName = oldImage
		s.discardImage(ctx, newImage)
		return err
	}

	if newImage != "" {
		s.discardImage(ctx, oldImage)
	}
	s.logger(ctx).Info().Uint("product_id", p.ID).Str("image", p.ImageFileName).Msg("product updated")
	return nil
}

// Delete removes the product and then its image. An unknown id returns
// repository.ErrProductNotFound and changes nothing.
func (s *Service) Delete(ctx context.Context, id uint) error {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		s.logger(ctx).Info().Uint("product_id", id).Msg("product not found, nothing to delete")
		return err
	}
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, p); err != nil {
		return err
	}
	s.discardImage(ctx, p.ImageFileName)

	s.logger(ctx).Info().Uint("product_id", id).Msg("product deleted")
	return nil
}

func (s *Service) storeImage(form *ProductForm, at time.Time) (string, error) {
	file, err := form.ImageFile.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	return s.images.Save(form.ImageFile.Filename, file, at)
}

func (s *Service) discardImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.images.Delete(name); err != nil {
		s.logger(ctx).Warn().Err(err).Str("image", name).Msg("could not delete image")
	}
}
