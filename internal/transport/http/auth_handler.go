package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vigiliot/vigil-server/internal/service"
)

// sessionCookieName is the browser cookie carrying the session token.
const sessionCookieName = "vigil_session"

type AuthHandler struct {
	auth      *service.AuthService
	cookieTTL time.Duration
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, cookieTTL time.Duration) {
	handler := &AuthHandler{auth: auth, cookieTTL: cookieTTL}

	e.POST("/register", handler.register)
	e.POST("/login", handler.login)
	e.POST("/logout", handler.logout)
	e.GET("/check_login", handler.checkLogin)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body!"))
	}

	err := h.auth.Register(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, Envelope{"success": true, "message": "User registered successfully!"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, failure("Invalid Input: Email already taken!"))
	case errors.Is(err, service.ErrMissingField):
		return c.JSON(http.StatusBadRequest, failure("Email and password are required!"))
	default:
		c.Logger().Errorf("register: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Registration failed."))
	}
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body!"))
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.writeSessionCookie(c, session.Token)
		return c.JSON(http.StatusOK, Envelope{"success": true, "user": session.User()})
	case errors.Is(err, service.ErrEmailNotFound):
		return c.JSON(http.StatusBadRequest, failure("Invalid Input: Email not found!"))
	case errors.Is(err, service.ErrWrongPassword):
		return c.JSON(http.StatusBadRequest, failure("Invalid Input: Wrong Password!"))
	case errors.Is(err, service.ErrMissingField):
		return c.JSON(http.StatusBadRequest, failure("Email and password are required!"))
	default:
		c.Logger().Errorf("login: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Login failed."))
	}
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), sessionToken(c)); err != nil {
		c.Logger().Errorf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Logout failed."))
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, Envelope{"success": true, "message": "Logged out successfully!"})
}

func (h *AuthHandler) checkLogin(c echo.Context) error {
	token := sessionToken(c)
	user, err := h.auth.CheckSession(c.Request().Context(), token)
	switch {
	case err == nil:
		h.writeSessionCookie(c, token)
		return c.JSON(http.StatusOK, Envelope{"loggedIn": true, "user": user})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusOK, Envelope{"loggedIn": false})
	default:
		c.Logger().Errorf("check_login: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Session check failed."))
	}
}

func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *AuthHandler) writeSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
