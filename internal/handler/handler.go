// Package handler contains the gin handlers of the admin panel.
package handler

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"beststore/internal/catalog"
	"beststore/internal/middleware"
	"beststore/internal/repository"
	"beststore/internal/views"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	catalog *catalog.Service
	users   repository.UserRepository
	db      Pinger
}

func New(svc *catalog.Service, users repository.UserRepository, db Pinger) *Handler {
	return &Handler{catalog: svc, users: users, db: db}
}

// viewData adds the logged in user and pending flash messages to data.
func viewData(c *gin.Context, data views.ViewData) views.ViewData {
	if data == nil {
		data = views.ViewData{}
	}
	data["UserName"] = middleware.CurrentUser(c)

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["Flashes"] = flashes
		if err := sess.Save(); err != nil {
			middleware.Logger(c).Warn().Err(err).Msg("could not save session")
		}
	}
	return data
}

// flash queues a message for the next rendered page.
func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	if err := sess.Save(); err != nil {
		middleware.Logger(c).Warn().Err(err).Msg("could not save session")
	}
}
