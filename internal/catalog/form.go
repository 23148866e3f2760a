package catalog

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"beststore/internal/models"
	"beststore/internal/storage"
)

// sniffLen is how many leading bytes of an upload are inspected for its type.
const sniffLen = 512

// Categories are the values offered by the category select.
var Categories = []string{"Phones", "Computers", "Accessories", "Printers", "Cameras", "Other"}

// ProductForm carries product fields between the HTML form and a Product.
type ProductForm struct {
	Name        string                `form:"name" binding:"required,max=100"`
	Brand       string                `form:"brand" binding:"required,max=100"`
	Category    string                `form:"category" binding:"required,max=100"`
	Price       string                `form:"price" binding:"required"`
	Description string                `form:"description" binding:"min=10,max=2000"`
	ImageFile   *multipart.FileHeader `form:"imageFile"`
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// FormFromProduct fills a form with the editable fields of p.
func FormFromProduct(p *models.Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
	}
}

// HasImage reports whether a non-empty file was uploaded.
func (f *ProductForm) HasImage() bool {
	return f.ImageFile != nil && f.ImageFile.Size > 0 && f.ImageFile.Filename != ""
}

func (f *ProductForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Brand = strings.TrimSpace(f.Brand)
	f.Category = strings.TrimSpace(f.Category)
	f.Price = strings.TrimSpace(strings.ReplaceAll(f.Price, ",", "."))
	f.Description = strings.TrimSpace(f.Description)
}

// ParsedPrice returns the price as a decimal rounded to cents.
func (f *ProductForm) ParsedPrice() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(f.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price %q: %w", f.Price, err)
	}
	return d.Round(2), nil
}

// ApplyTo copies the form fields onto p. The image file name is left alone.
func (f *ProductForm) ApplyTo(p *models.Product) error {
	price, err := f.ParsedPrice()
	if err != nil {
		return err
	}
	p.Name = f.Name
	p.Brand = f.Brand
	p.Category = f.Category
	p.Price = price
	p.Description = f.Description
	return nil
}

// Validate checks the form after binding. bindErr is whatever the binder
// returned; tag violations are turned into field messages. requireImage is set
// on create, where an upload is mandatory.
func (f *ProductForm) Validate(bindErr error, requireImage bool) FieldErrors {
	f.normalize()
	fe := FieldErrors{}

	var verrs validator.ValidationErrors
	if errors.As(bindErr, &verrs) {
		for _, e := range verrs {
			fe.Add(formField(e), fieldMessage(e))
		}
	} else if bindErr != nil {
		fe.Add("form", "The form could not be read")
	}

	// tag rules ran before trimming
	for field, v := range map[string]string{"name": f.Name, "brand": f.Brand, "category": f.Category} {
		if v == "" {
			fe.Add(field, "is required")
		}
	}
	if f.Category != "" && !slices.Contains(Categories, f.Category) {
		fe.Add("category", "must be one of: "+strings.Join(Categories, ", "))
	}
	if n := len([]rune(f.Description)); n < 10 {
		fe.Add("description", "must be at least 10 characters")
	}

	if f.Price == "" {
		fe.Add("price", "is required")
	} else if price, err := f.ParsedPrice(); err != nil {
		fe.Add("price", "must be a number")
	} else if price.IsNegative() {
		fe.Add("price", "must be at least 0")
	}

	if !f.HasImage() {
		if requireImage {
			fe.Add("imageFile", "The image file is required")
		}
		return fe
	}
	if err := checkUpload(f.ImageFile); err != nil {
		fe.Add("imageFile", "must be a JPG, PNG, GIF or WebP image")
	}
	return fe
}

func checkUpload(fh *multipart.FileHeader) error {
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	return storage.CheckImage(fh.Filename, head[:n])
}

var formFieldNames = func() map[string]string {
	names := map[string]string{}
	t := reflect.TypeOf(ProductForm{})
	for i := 0; i < t.NumField(); i++ {
		names[t.Field(i).Name] = t.Field(i).Tag.Get("form")
	}
	return names
}()

func formField(e validator.FieldError) string {
	if name, ok := formFieldNames[e.StructField()]; ok {
		return name
	}
	return strings.ToLower(e.Field())
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return fmt.Sprintf("failed %s", e.Tag())
	}
}
