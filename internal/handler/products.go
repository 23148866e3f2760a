package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beststore/internal/catalog"
	"beststore/internal/middleware"
	"beststore/internal/models"
	"beststore/internal/repository"
	"beststore/internal/views"
)

const productsPath = "/products"

func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		middleware.Logger(c).Error().Err(err).Msg("list products")
		items = nil
	}
	c.HTML(http.StatusOK, "products_index.tmpl", viewData(c, views.ViewData{
		"Title":    "Products",
		"Products": items,
	}))
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, catalog.ProductForm{}, catalog.FieldErrors{})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var form catalog.ProductForm
	bindErr := c.ShouldBind(&form)
	if fe := form.Validate(bindErr, true); fe.Any() {
		h.renderCreate(c, http.StatusBadRequest, form, fe)
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), &form)
	if err != nil {
		middleware.Logger(c).Error().Err(err).Msg("create product")
		flash(c, "The product could not be created")
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}

	flash(c, "Product \""+p.Name+"\" created")
	c.Redirect(http.StatusSeeOther, productsPath)
}

func (h *Handler) ShowEdit(c *gin.Context) {
	p, ok := h.loadProduct(c)
	if !ok {
		return
	}
	h.renderEdit(c, http.StatusOK, p, catalog.FormFromProduct(p), catalog.FieldErrors{})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	p, ok := h.loadProduct(c)
	if !ok {
		return
	}

	var form catalog.ProductForm
	bindErr := c.ShouldBind(&form)
	if fe := form.Validate(bindErr, false); fe.Any() {
		h.renderEdit(c, http.StatusBadRequest, p, form, fe)
		return
	}

	if err := h.catalog.Update(c.Request.Context(), p, &form); err != nil {
		middleware.Logger(c).Error().Err(err).Uint("product_id", p.ID).Msg("update product")
		flash(c, "The product could not be updated")
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}

	flash(c, "Product \""+p.Name+"\" updated")
	c.Redirect(http.StatusSeeOther, productsPath)
}

// DeleteProduct always ends on the list; an unknown id is only logged.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		middleware.Logger(c).Info().Str("id", c.Query("id")).Msg("delete with invalid id")
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}

	err = h.catalog.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
	case err != nil:
		middleware.Logger(c).Error().Err(err).Uint("product_id", id).Msg("delete product")
		flash(c, "The product could not be deleted")
	default:
		flash(c, "Product deleted")
	}
	c.Redirect(http.StatusSeeOther, productsPath)
}

// loadProduct resolves ?id=; on failure it redirects to the list and returns false.
func (h *Handler) loadProduct(c *gin.Context) (*models.Product, bool) {
	log := middleware.Logger(c)

	id, err := productID(c)
	if err != nil {
		log.Info().Str("id", c.Query("id")).Msg("invalid product id")
		c.Redirect(http.StatusSeeOther, productsPath)
		return nil, false
	}

	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			log.Info().Uint("product_id", id).Msg("product not found")
			flash(c, "Product not found")
		} else {
			log.Error().Err(err).Uint("product_id", id).Msg("load product")
		}
		c.Redirect(http.StatusSeeOther, productsPath)
		return nil, false
	}
	return p, true
}

func productID(c *gin.Context) (uint, error) {
	raw := c.Query("id")
	if raw == "" {
		raw = c.PostForm("id")
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, errors.New("invalid product id")
	}
	return uint(id), nil
}

func (h *Handler) renderCreate(c *gin.Context, status int, form catalog.ProductForm, fe catalog.FieldErrors) {
	c.HTML(status, "products_create.tmpl", viewData(c, views.ViewData{
		"Title":      "New Product",
		"Form":       form,
		"Errors":     fe,
		"Categories": catalog.Categories,
	}))
}

func (h *Handler) renderEdit(c *gin.Context, status int, p *models.Product, form catalog.ProductForm, fe catalog.FieldErrors) {
	c.HTML(status, "products_edit.tmpl", viewData(c, views.ViewData{
		"Title":      "Edit Product",
		"Product":    p,
		"Form":       form,
		"Errors":     fe,
		"Categories": catalog.Categories,
	}))
}
