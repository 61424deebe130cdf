package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// Session is the authenticated caller, extracted from the verified access
// token by the auth middleware and passed explicitly into the domain layer.
type Session struct {
	UserID uint
	Email  string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func Into(c echo.Context, s Session) {
	c.Set("userID", s.UserID)
	c.Set("email", s.Email)
	c.Set("role", s.Role)
}

func From(c echo.Context) (Session, error) {
	userID, ok1 := c.Get("userID").(uint)
	email, ok2 := c.Get("email").(string)
	role, ok3 := c.Get("role").(string)
	if !ok1 || !ok2 || !ok3 {
		return Session{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return Session{UserID: userID, Email: email, Role: role}, nil
}
