package adminapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/webserver"
)

// Placeholder gate, not a security boundary: fixed credentials, no
// lockout, and a per-process signing key so admin sessions are lost on
// restart.
const (
	adminUsername = "admin"
	adminPassword = "admin123"

	tokenLifetime = 12 * time.Hour
)

var signingKey = []byte(random.String(64))

// SigningKey returns the per-process admin JWT key for the webserver
// guard.
func SigningKey() []byte {
	return signingKey
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func registerAuthRoutes() {
	// login itself is public
	webserver.ApiPOST("/admin/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}

	userOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(payload.Password), []byte(adminPassword)) == 1
	if !userOK || !passOK {
		zap.L().Warn("admin login rejected", zap.String("username", payload.Username))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	claims := jwt.MapClaims{
		"sub": adminUsername,
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}

	zap.L().Info("admin login accepted")
	return ok(c, map[string]interface{}{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int64(tokenLifetime.Seconds()),
	})
}
