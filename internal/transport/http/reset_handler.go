package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigiliot/vigil-server/internal/service"
)

var resetPageTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Reset Password</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: #f4f6f8; color: #333; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
.card { background: #fff; padding: 32px; border-radius: 8px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); width: 90%; max-width: 380px; }
input { width: 100%; padding: 10px; margin: 8px 0; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { width: 100%; padding: 12px; margin-top: 12px; font-size: 16px; border: none; border-radius: 4px; cursor: pointer; background: #2f6fed; color: #fff; }
button:hover { background: #2558c4; }
#status { margin-top: 12px; font-size: 14px; }
</style>
</head>
<body>
<div class="card">
  <h2>Reset your password</h2>
  <p>Resetting the password for {{.Email}}.</p>
  <form onsubmit="return submitReset(event)">
    <input type="password" id="newPassword" placeholder="New password" required minlength="6" />
    <input type="password" id="confirmPassword" placeholder="Confirm password" required minlength="6" />
    <button type="submit">Reset Password</button>
  </form>
  <div id="status"></div>
</div>
<script>
async function submitReset(event) {
  event.preventDefault();
  const status = document.getElementById('status');
  const newPassword = document.getElementById('newPassword').value;
  const confirmPassword = document.getElementById('confirmPassword').value;
  if (newPassword !== confirmPassword) {
    status.textContent = 'Passwords do not match.';
    return false;
  }
  const response = await fetch('/reset-password', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ token: {{.Token}}, newPassword: newPassword })
  });
  status.textContent = await response.text();
  return false;
}
</script>
</body>
</html>`))

type ResetHandler struct {
	auth *service.AuthService
}

func RegisterReset(e *echo.Echo, auth *service.AuthService) {
	handler := &ResetHandler{auth: auth}

	e.POST("/send-email", handler.sendEmail)
	e.GET("/get-reset-page", handler.resetPage)
	e.POST("/reset-password", handler.resetPassword)
}

func (h *ResetHandler) sendEmail(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body!"))
	}

	err := h.auth.RequestReset(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, Envelope{"success": true, "message": "Password reset email sent!"})
	case errors.Is(err, service.ErrMissingField):
		return c.JSON(http.StatusBadRequest, failure("Recipient email required!"))
	case errors.Is(err, service.ErrEmailNotFound):
		return c.JSON(http.StatusNotFound, failure("Email address not found!"))
	default:
		c.Logger().Errorf("send-email: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to send reset email."))
	}
}

func (h *ResetHandler) resetPage(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.String(http.StatusBadRequest, "Missing token.")
	}

	user, err := h.auth.ValidateResetToken(c.Request().Context(), token)
	switch {
	case err == nil:
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return resetPageTemplate.Execute(c.Response(), map[string]string{
			"Email": user.Email,
			"Token": token,
		})
	case errors.Is(err, service.ErrResetTokenInvalid):
		return c.String(http.StatusBadRequest, "Invalid or expired reset link.")
	default:
		c.Logger().Errorf("get-reset-page: %v", err)
		return c.String(http.StatusInternalServerError, "Something went wrong.")
	}
}

func (h *ResetHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body.")
	}

	err := h.auth.ConsumeResetToken(c.Request().Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		return c.String(http.StatusOK, "Password has been successfully reset.")
	case errors.Is(err, service.ErrMissingField):
		return c.String(http.StatusBadRequest, "Missing token or new password.")
	case errors.Is(err, service.ErrResetTokenInvalid):
		return c.String(http.StatusBadRequest, "Invalid or expired reset token.")
	default:
		c.Logger().Errorf("reset-password: %v", err)
		return c.String(http.StatusInternalServerError, "Something went wrong.")
	}
}
