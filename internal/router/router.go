// Package router assembles the gin engine of the admin panel.
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"beststore/internal/handler"
	"beststore/internal/middleware"
	"beststore/internal/storage"
	"beststore/internal/views"
)

const maxUploadMemory = 8 << 20

type Options struct {
	Handler       *handler.Handler
	Logger        zerolog.Logger
	ImageDir      string
	SessionName   string
	SessionSecret string
	SecureCookies bool
}

func New(opts Options) (*gin.Engine, error) {
	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.RequestID(), middleware.RequestLogger(opts.Logger), gin.Recovery())

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(opts.SessionName, store))

	h := opts.Handler

	r.Static(storage.URLPrefix, opts.ImageDir)
	r.GET("/health", h.Health)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/products") })

	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	admin := r.Group("/", middleware.MustLogin("/login"))
	{
		products := admin.Group("/products")
		products.GET("", h.ListProducts)
		products.GET("/", h.ListProducts)
		products.GET("/create", h.ShowCreate)
		products.POST("/create", h.CreateProduct)
		products.GET("/edit", h.ShowEdit)
		products.POST("/edit", h.UpdateProduct)
		products.GET("/delete", h.DeleteProduct)
		products.POST("/delete", h.DeleteProduct)

		admin.GET("/api/products", h.APIProducts)
	}

	return r, nil
}
