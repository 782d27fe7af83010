package middleware

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/usecase"
)

const principalKey = "principal"

type PrincipalMiddleware struct {
	principal usecase.Principal
}

func NewPrincipalMiddleware(principal usecase.Principal) *PrincipalMiddleware {
	return &PrincipalMiddleware{
		principal: principal,
	}
}

// Attach puts the acting user on the request context.
func (m *PrincipalMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(principalKey, m.principal)
		return next(c)
	}
}

// PrincipalFrom returns the principal set by Attach, or nil.
func PrincipalFrom(c echo.Context) usecase.Principal {
	p, _ := c.Get(principalKey).(usecase.Principal)
	return p
}
