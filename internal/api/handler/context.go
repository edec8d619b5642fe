package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty user id proves the
// middleware ran, and a token without roles is structurally valid but
// operationally unusable.
func ctxIdentity(c echo.Context) (userID, username string, roles []string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ = c.Get("username").(string)
	roles, _ = c.Get("roles").([]string)
	if len(roles) == 0 {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing roles")
	}

	return userID, username, roles, nil
}
