package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"beststore/internal/middleware"
	"beststore/internal/models"
	"beststore/internal/repository"
	"beststore/internal/views"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != "" {
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", viewData(c, views.ViewData{"Title": "Login", "Username": ""}))
}

func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	pw := c.PostForm("password")
	fail := func(status int, msg string) {
		c.HTML(status, "login.tmpl", viewData(c, views.ViewData{
			"Title": "Login", "Username": username, "Error": msg,
		}))
	}

	if username == "" || pw == "" {
		fail(http.StatusBadRequest, "Fill all fields")
		return
	}

	u, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		middleware.Logger(c).Error().Err(err).Msg("login lookup")
		fail(http.StatusInternalServerError, "Login is unavailable right now")
		return
	}
	if u == nil || !models.CheckPassword(u.PasswordHash, pw) {
		middleware.Logger(c).Warn().Str("username", username).Msg("failed login")
		fail(http.StatusUnauthorized, "Wrong username or password")
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, u.Username)
	if err := sess.Save(); err != nil {
		middleware.Logger(c).Error().Err(err).Msg("save session")
		fail(http.StatusInternalServerError, "Login is unavailable right now")
		return
	}
	c.Redirect(http.StatusSeeOther, productsPath)
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, "/login")
}
