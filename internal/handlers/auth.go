package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha/internal/repository"
	"afisha/internal/service"
	"afisha/internal/web"
)

func (h HandlerSet) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{
		"Flash": web.TakeFlash(c),
	})
}

func (h HandlerSet) RegisterSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.auth.Register(c.Request.Context(), username, password); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			web.SetFlash(c, "That username is already taken.")
		} else {
			h.log.Error().Err(err).Str("username", username).Msg("registration failed")
			web.SetFlash(c, "Registration failed, please try again.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	web.SetFlash(c, "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Flash": web.TakeFlash(c),
	})
}

func (h HandlerSet) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	result, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			web.SetFlash(c, "Wrong username or password!")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.log.Error().Err(err).Str("username", username).Msg("login failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.SetCookie(
		h.cfg.Session.CookieName,
		result.Token,
		int(h.cfg.Session.TTL.Seconds()),
		"/", "", false, true,
	)
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		h.auth.Logout(c.Request.Context(), token)
	}

	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
