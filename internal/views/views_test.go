package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"beststore/internal/catalog"
	"beststore/internal/models"
)

func render(t *testing.T, name string, data ViewData) string {
	t.Helper()
	tmpl, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func sampleProduct() models.Product {
	p := models.Product{
		Name:          "Galaxy <S24>",
		Brand:         "Samsung",
		Category:      "Phones",
		Price:         decimal.RequireFromString("799.5"),
		ImageFileName: "1718000000000_s24.png",
	}
	p.ID = 7
	p.CreatedAt = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	return p
}

func TestIndex(t *testing.T) {
	html := render(t, "products_index.tmpl", ViewData{
		"Products": []models.Product{sampleProduct()},
		"UserName": "admin",
		"Flashes":  []any{"Product created"},
	})
	require.Contains(t, html, "Galaxy &lt;S24&gt;")
	require.Contains(t, html, "799.50$")
	require.Contains(t, html, "2024-06-10")
	require.Contains(t, html, `/images/1718000000000_s24.png`)
	require.Contains(t, html, `/products/edit?id=7`)
	require.Contains(t, html, `<form class="d-inline" method="post" action="/products/delete"`)
	require.Contains(t, html, `<input type="hidden" name="id" value="7">`)
	require.NotContains(t, html, `/products/delete?id=`)
	require.Contains(t, html, "Product created")
}

func TestIndex_EscapesImageURL(t *testing.T) {
	p := sampleProduct()
	p.ImageFileName = "1718000000000_my#pic.png"
	html := render(t, "products_index.tmpl", ViewData{"Products": []models.Product{p}})
	require.Contains(t, html, `src="/images/1718000000000_my%23pic.png"`)
}

func TestIndex_Empty(t *testing.T) {
	html := render(t, "products_index.tmpl", ViewData{"Products": []models.Product{}})
	require.Contains(t, html, "No products yet")
}

func TestCreateForm_ShowsErrors(t *testing.T) {
	html := render(t, "products_create.tmpl", ViewData{
		"Form":       catalog.ProductForm{Name: "Kept value", Category: "Cameras"},
		"Errors":     catalog.FieldErrors{"imageFile": "The image file is required"},
		"Categories": catalog.Categories,
	})
	require.Contains(t, html, `value="Kept value"`)
	require.Contains(t, html, "The image file is required")
	require.Contains(t, html, `<option value="Cameras" selected>`)
	require.Contains(t, html, `enctype="multipart/form-data"`)
}

func TestEditForm(t *testing.T) {
	p := sampleProduct()
	html := render(t, "products_edit.tmpl", ViewData{
		"Product":    p,
		"Form":       catalog.FormFromProduct(&p),
		"Errors":     catalog.FieldErrors{},
		"Categories": catalog.Categories,
	})
	require.Contains(t, html, `action="/products/edit?id=7"`)
	require.Contains(t, html, `value="799.50"`)
	require.Contains(t, html, `/images/1718000000000_s24.png`)
}

func TestLogin(t *testing.T) {
	html := render(t, "login.tmpl", ViewData{"Username": "admin", "Error": "Wrong username or password"})
	require.Contains(t, html, "Wrong username or password")
	require.Contains(t, html, `value="admin"`)
}
